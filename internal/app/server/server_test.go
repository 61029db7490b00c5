package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/go-qr-shortener/internal/app/service"
	"github.com/atinyakov/go-qr-shortener/internal/models"
	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
	"github.com/atinyakov/go-qr-shortener/internal/storage"
)

const baseURL = "http://localhost:8080"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServices(s service.Storage) Services {
	hasher := &service.PassphraseHasher{Time: 1, Memory: 64, Threads: 1, KeyLen: 32}
	return Services{
		Registry:  service.NewLinkRegistry(s, hasher, zap.NewNop()),
		Generator: service.NewQRGenerator(s, qrimage.NewEncoder(), baseURL, zap.NewNop()),
		Resolver:  service.NewRedirectResolver(s, zap.NewNop()),
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mem, err := storage.CreateMemoryStorage()
	require.NoError(t, err)

	ts := httptest.NewServer(Init(zap.NewNop(), newServices(mem), BuildInfo{Version: "v1.2.3", Commit: "abc"}))
	t.Cleanup(ts.Close)
	return ts
}

// noRedirectClient returns ts's client with redirect following disabled.
func noRedirectClient(ts *httptest.Server) *http.Client {
	client := *ts.Client()
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &client
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := noRedirectClient(ts).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, data
}

func create(t *testing.T, ts *httptest.Server, link string) models.CreateResponse {
	t.Helper()

	resp, body := do(t, ts, http.MethodPost, "/qr", `{"link":"`+link+`"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var created models.CreateResponse
	require.NoError(t, json.Unmarshal(body, &created))
	return created
}

func decodeQR(t *testing.T, data []byte) string {
	t.Helper()

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)

	return result.GetText()
}

func TestCreateAndGet(t *testing.T) {
	ts := newTestServer(t)

	created := create(t, ts, "https://example.com/a")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "https://example.com/a", created.Link)
	assert.NotEmpty(t, created.Passphrase)

	resp, body := do(t, ts, http.MethodGet, "/qr/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, created.ID.String(), got["id"])
	assert.Equal(t, "https://example.com/a", got["link"])
	assert.Contains(t, got, "created_at")
	assert.NotContains(t, got, "passphrase")
	assert.NotContains(t, string(body), created.Passphrase)
}

func TestUpdate(t *testing.T) {
	ts := newTestServer(t)
	created := create(t, ts, "https://example.com/a")
	path := "/qr/" + created.ID.String()

	resp, _ := do(t, ts, http.MethodPut, path, `{"link":"https://x","password":"wrong"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body := do(t, ts, http.MethodGet, path, "")
	assert.Contains(t, string(body), `"link":"https://example.com/a"`)
	assert.NotContains(t, string(body), "modified_at")

	resp, _ = do(t, ts, http.MethodPut, path, `{"link":"not a url","password":"`+created.Passphrase+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, ts, http.MethodPut, path, `{"link":"https://example.com/b","password":"`+created.Passphrase+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"`+created.ID.String()+`"}`, string(body))

	_, body = do(t, ts, http.MethodGet, path, "")
	assert.Contains(t, string(body), `"link":"https://example.com/b"`)
	assert.Contains(t, string(body), "modified_at")
}

func TestImagesAndRedirect(t *testing.T) {
	ts := newTestServer(t)
	created := create(t, ts, "https://example.com/a?x=1")
	id := created.ID.String()
	payload := baseURL + "/redirect?id=" + id

	for _, tc := range []struct {
		query       string
		contentType string
	}{
		{"", "image/png"},
		{"?type=png", "image/png"},
		{"?type=jpg", "image/jpeg"},
	} {
		resp, body := do(t, ts, http.MethodGet, "/qr/"+id+"/image"+tc.query, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, tc.contentType, resp.Header.Get("Content-Type"))
		assert.Equal(t, payload, decodeQR(t, body))
	}

	resp, body := do(t, ts, http.MethodGet, "/qr/"+id+"/image?type=svg", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "inline", resp.Header.Get("Content-Disposition"))
	assert.Contains(t, string(body), "<svg")

	resp, _ = do(t, ts, http.MethodGet, "/qr/"+id+"/image?type=gif", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/redirect?id="+id, "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com/a?x=1", resp.Header.Get("Location"))
}

func TestCreateImage(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodPost, "/qr/image?type=png", `{"link":"https://example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	id := resp.Header.Get("X-QR-Id")
	pass := resp.Header.Get("X-QR-Passphrase")
	require.NotEmpty(t, pass)
	assert.Equal(t, baseURL+"/redirect?id="+id, decodeQR(t, body))

	resp, _ = do(t, ts, http.MethodDelete, "/qr/"+id+"/"+pass, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDelete(t *testing.T) {
	ts := newTestServer(t)
	created := create(t, ts, "https://example.com/a")
	id := created.ID.String()

	resp, _ := do(t, ts, http.MethodDelete, "/qr/"+id+"/wrong", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/qr/"+id, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodDelete, "/qr/"+id+"/"+created.Passphrase, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, path := range []string{"/qr/" + id, "/qr/" + id + "/image", "/redirect?id=" + id} {
		resp, _ = do(t, ts, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}

	resp, _ = do(t, ts, http.MethodDelete, "/qr/"+id+"/"+created.Passphrase, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPassphraseNeverLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	mem, err := storage.CreateMemoryStorage()
	require.NoError(t, err)
	logger := zap.New(core)

	ts := httptest.NewServer(Init(logger, Services{
		Registry:  service.NewLinkRegistry(mem, &service.PassphraseHasher{Time: 1, Memory: 64, Threads: 1, KeyLen: 32}, logger),
		Generator: service.NewQRGenerator(mem, qrimage.NewEncoder(), baseURL, logger),
		Resolver:  service.NewRedirectResolver(mem, logger),
	}, BuildInfo{}))
	defer ts.Close()

	created := create(t, ts, "https://example.com/a")
	id := created.ID.String()

	resp, _ := do(t, ts, http.MethodPut, "/qr/"+id, `{"link":"https://example.com/b","password":"`+created.Passphrase+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodDelete, "/qr/"+id+"/"+created.Passphrase, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.FilterMessage("HTTP Request").All()
	require.NotEmpty(t, entries)

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, created.Passphrase)
		for k, v := range entry.ContextMap() {
			assert.NotContains(t, fmt.Sprint(v), created.Passphrase, k)
		}
	}

	var deleteLogged bool
	for _, entry := range entries {
		if entry.ContextMap()["method"] == http.MethodDelete {
			deleteLogged = true
			assert.Equal(t, "/qr/{id}/{pass}", entry.ContextMap()["url"])
		}
	}
	assert.True(t, deleteLogged)
}

func TestNeverCreated(t *testing.T) {
	ts := newTestServer(t)
	id := uuid.NewString()

	for _, path := range []string{
		"/qr/" + id,
		"/qr/" + id + "/image?type=svg",
		"/redirect?id=" + id,
		"/qr/not-a-uuid",
		"/redirect?id=not-a-uuid",
		"/redirect",
	} {
		resp, _ := do(t, ts, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestMalformedRequests(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, ts, http.MethodPost, "/qr", `{"link":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPost, "/qr", `{"link":"ftp.example.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodPatch, "/qr/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = do(t, ts, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGzipRequestBody(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(`{"link":"https://example.com/zipped"}`))
	require.NoError(t, zw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/qr", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	// the client transport asked for gzip and inflated the answer
	assert.True(t, resp.Uncompressed)
}

func TestInfoEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, body = do(t, ts, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Build version: v1.2.3")
	assert.Contains(t, string(body), "Build date: N/A")
	assert.Contains(t, string(body), "Build commit: abc")

	resp, _ = do(t, ts, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// brokenStorage fails every call as an unreachable database would.
type brokenStorage struct{}

var errBroken = errors.New("dial tcp 10.0.0.1:5432: connection refused")

func (brokenStorage) FindByID(context.Context, uuid.UUID) (*storage.LinkRecord, error) {
	return nil, errBroken
}

func (brokenStorage) Create(context.Context, storage.LinkRecord) (*storage.LinkRecord, error) {
	return nil, errBroken
}

func (brokenStorage) UpdateLink(context.Context, uuid.UUID, string, string, time.Time) (*storage.LinkRecord, error) {
	return nil, errBroken
}

func (brokenStorage) Delete(context.Context, uuid.UUID, string) (*storage.LinkRecord, error) {
	return nil, errBroken
}

func (brokenStorage) PingContext(context.Context) error {
	return errBroken
}

func TestStorageFailure(t *testing.T) {
	ts := httptest.NewServer(Init(zap.NewNop(), newServices(brokenStorage{}), BuildInfo{}))
	defer ts.Close()

	id := uuid.NewString()
	for _, tc := range []struct {
		method, path, body string
	}{
		{http.MethodPost, "/qr", `{"link":"https://example.com"}`},
		{http.MethodGet, "/qr/" + id, ""},
		{http.MethodGet, "/qr/" + id + "/image", ""},
		{http.MethodGet, "/redirect?id=" + id, ""},
		{http.MethodPut, "/qr/" + id, `{"link":"https://example.com","password":"p"}`},
		{http.MethodDelete, "/qr/" + id + "/p", ""},
		{http.MethodGet, "/ping", ""},
	} {
		resp, body := do(t, ts, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, tc.path)
		assert.Equal(t, "internal error\n", string(body), tc.path)
	}
}
