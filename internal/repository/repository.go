// Package repository implements the relational link store on top of
// database/sql. Postgres is reached through the pgx stdlib driver; SQLite
// DSNs are served by the pure-Go modernc driver.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/atinyakov/go-qr-shortener/internal/storage"
)

// Dialect selects the SQL flavour spoken by the repository.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS qr_code (
		id UUID PRIMARY KEY,
		link VARCHAR(512) NOT NULL,
		passphrase VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL,
		modified_at TIMESTAMP NULL
	);`

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS qr_code (
		id TEXT PRIMARY KEY,
		link VARCHAR(512) NOT NULL,
		passphrase VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL,
		modified_at TIMESTAMP NULL
	);`

const returningColumns = "id, link, passphrase, created_at, modified_at"

// ParseDSN maps a DSN to the driver name, the driver-specific data source and
// the dialect. "sqlite://path", "file:..." and "*.db" select SQLite, anything
// else is handed to pgx.
func ParseDSN(dsn string) (driver string, source string, dialect Dialect) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", withTimeFormat(strings.TrimPrefix(dsn, "sqlite://")), SQLite
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"):
		return "sqlite", withTimeFormat(dsn), SQLite
	default:
		return "pgx", dsn, Postgres
	}
}

// withTimeFormat makes modernc write timestamps in a sortable layout instead
// of time.Time.String().
func withTimeFormat(source string) string {
	if strings.Contains(source, "_time_format=") {
		return source
	}
	if strings.Contains(source, "?") {
		return source + "&_time_format=sqlite"
	}
	return source + "?_time_format=sqlite"
}

// InitDB opens the pool for dsn, checks connectivity and makes sure the
// qr_code table exists.
func InitDB(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, Dialect, error) {
	driver, source, dialect := ParseDSN(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, dialect, fmt.Errorf("open %s: %w", driver, err)
	}

	if dialect == SQLite {
		// SQLite has a single writer.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("ping %s: %w", driver, err)
	}

	schema := postgresSchema
	if dialect == SQLite {
		schema = sqliteSchema
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("create qr_code table: %w", err)
	}

	logger.Info("database connected and table ready", zap.String("driver", driver))
	return db, dialect, nil
}

type LinkRepository struct {
	db      *sql.DB
	dialect Dialect
	logger  *zap.Logger
}

func CreateLinkRepository(db *sql.DB, dialect Dialect, logger *zap.Logger) *LinkRepository {
	return &LinkRepository{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// rebind converts $N placeholders to SQLite's ?N form.
func (r *LinkRepository) rebind(query string) string {
	if r.dialect == SQLite {
		return strings.ReplaceAll(query, "$", "?")
	}
	return query
}

func (r *LinkRepository) greatest() string {
	if r.dialect == SQLite {
		return "MAX"
	}
	return "GREATEST"
}

func (r *LinkRepository) Create(ctx context.Context, v storage.LinkRecord) (*storage.LinkRecord, error) {
	_, err := r.db.ExecContext(ctx,
		r.rebind("INSERT INTO qr_code (id, link, passphrase, created_at) VALUES ($1, $2, $3, $4);"),
		v.ID, v.Link, v.PassphraseHash, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, storage.ErrConflict
		}
		r.logger.Error("insert qr_code failed", zap.Stringer("id", v.ID), zap.Error(err))
		return nil, err
	}

	v.ModifiedAt = nil
	return &v, nil
}

func (r *LinkRepository) FindByID(ctx context.Context, id uuid.UUID) (*storage.LinkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		r.rebind("SELECT "+returningColumns+" FROM qr_code WHERE id = $1;"),
		id,
	)

	return scanRecord(row)
}

// UpdateLink checks the passphrase hash and replaces the link in a single
// statement. modified_at never moves backwards.
func (r *LinkRepository) UpdateLink(ctx context.Context, id uuid.UUID, hash string, link string, modifiedAt time.Time) (*storage.LinkRecord, error) {
	query := fmt.Sprintf(
		"UPDATE qr_code SET link = $1, modified_at = %s(COALESCE(modified_at, $2), $2) WHERE id = $3 AND passphrase = $4 RETURNING %s;",
		r.greatest(), returningColumns,
	)

	row := r.db.QueryRowContext(ctx, r.rebind(query), link, modifiedAt, id, hash)
	return scanRecord(row)
}

// Delete checks the passphrase hash and removes the row in a single
// statement, returning the row as it was.
func (r *LinkRepository) Delete(ctx context.Context, id uuid.UUID, hash string) (*storage.LinkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		r.rebind("DELETE FROM qr_code WHERE id = $1 AND passphrase = $2 RETURNING "+returningColumns+";"),
		id, hash,
	)

	return scanRecord(row)
}

func (r *LinkRepository) PingContext(c context.Context) error {
	return r.db.PingContext(c)
}

func scanRecord(row *sql.Row) (*storage.LinkRecord, error) {
	var (
		rec        storage.LinkRecord
		createdAt  timestamp
		modifiedAt timestamp
	)

	err := row.Scan(&rec.ID, &rec.Link, &rec.PassphraseHash, &createdAt, &modifiedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	rec.CreatedAt = createdAt.Time
	if modifiedAt.Valid {
		t := modifiedAt.Time
		rec.ModifiedAt = &t
	}

	return &rec, nil
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// timestamp is a nullable time that also accepts the textual forms SQLite
// hands back for expression columns.
type timestamp struct {
	Time  time.Time
	Valid bool
}

func (ts *timestamp) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		ts.Time, ts.Valid = time.Time{}, false
		return nil
	case time.Time:
		ts.Time, ts.Valid = v.UTC(), true
		return nil
	case []byte:
		return ts.parse(string(v))
	case string:
		return ts.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into timestamp", value)
	}
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time, ts.Valid = t.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return false
}
