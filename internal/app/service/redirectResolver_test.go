package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/atinyakov/go-qr-shortener/internal/storage"
)

func TestRedirectResolver_Resolve(t *testing.T) {
	registry, mem := newTestRegistry(t)
	resolver := NewRedirectResolver(mem, zap.NewNop())

	created, err := registry.Create(context.Background(), "https://example.com/a?b=c")
	require.NoError(t, err)

	target, err := resolver.Resolve(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=c", target.String())
}

func TestRedirectResolver_NotFound(t *testing.T) {
	_, mem := newTestRegistry(t)
	resolver := NewRedirectResolver(mem, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedirectResolver_MalformedTarget(t *testing.T) {
	var logBuf bytes.Buffer
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(&logBuf), zapcore.InfoLevel)

	mem, _ := storage.CreateMemoryStorage()
	resolver := NewRedirectResolver(mem, zap.New(core))

	for _, bad := range []string{"http://[::1", "relative/path", "mailto:a@b.c", "https:///no-host"} {
		id := uuid.New()
		_, err := mem.Create(context.Background(), storage.LinkRecord{ID: id, Link: bad, CreatedAt: time.Now()})
		require.NoError(t, err)

		_, err = resolver.Resolve(context.Background(), id)
		assert.ErrorIs(t, err, ErrMalformedTarget)
		assert.NotErrorIs(t, err, ErrNotFound)
	}

	assert.Contains(t, logBuf.String(), `"level":"error"`)
	assert.Contains(t, logBuf.String(), "integrity fault")
}

func TestRedirectResolver_StorageError(t *testing.T) {
	resolver := NewRedirectResolver(failingStorage{err: errors.New("broken pipe")}, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrStorage)
	assert.NotErrorIs(t, err, ErrNotFound)
}
