// Package store persists user-defined units in a SQLite database so they
// survive between invocations of the command line tool and the HTTP server.
//
// Only definitions are stored (name, expression, offset, metadata and the
// prefix range). LoadInto replays them through the registry, so a stored
// unit is validated exactly like one typed on the command line.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/physical-quantities/units/pkg/registry"
)

var (
	// ErrExists is returned when saving a name that is already stored.
	ErrExists = errors.New("store: unit already saved")

	// ErrNotFound is returned when a stored unit does not exist.
	ErrNotFound = errors.New("store: unit not found")
)

// Record is a stored unit definition.
type Record struct {
	Name       string               `json:"name" yaml:"name"`
	Expression string               `json:"expression" yaml:"expression"`
	Offset     float64              `json:"offset,omitempty" yaml:"offset,omitempty"`
	Comment    string               `json:"comment,omitempty" yaml:"comment,omitempty"`
	URL        string               `json:"url,omitempty" yaml:"url,omitempty"`
	Prefix     registry.PrefixRange `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	CreatedAt  time.Time            `json:"created_at" yaml:"created_at"`
}

// Definition converts the record into a registry definition.
func (r Record) Definition() registry.Definition {
	return registry.Definition{
		Expression: r.Expression,
		Offset:     r.Offset,
		Comment:    r.Comment,
		URL:        r.URL,
	}
}

const schema = `CREATE TABLE IF NOT EXISTS custom_units (
	name        TEXT PRIMARY KEY,
	expression  TEXT NOT NULL,
	unit_offset REAL NOT NULL DEFAULT 0,
	comment     TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	prefix      TEXT NOT NULL DEFAULT 'none',
	created_at  TIMESTAMP NOT NULL
)`

// Store reads and writes custom unit definitions.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	// Every connection to :memory: is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	return New(db, logger), nil
}

// New wraps an existing database handle.
func New(db *sql.DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger, now: time.Now}
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate store: %w", err)
	}
	return nil
}

// Save inserts rec. A zero CreatedAt is set to the current time.
func (s *Store) Save(ctx context.Context, rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	if rec.Prefix == "" {
		rec.Prefix = registry.PrefixNone
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_units (name, expression, unit_offset, comment, url, prefix, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Name, rec.Expression, rec.Offset, rec.Comment, rec.URL, string(rec.Prefix), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save unit %q: %w", rec.Name, convertDBError(err))
	}

	s.logger.Debug("custom unit saved", zap.String("name", rec.Name), zap.String("expression", rec.Expression))
	return nil
}

const selectColumns = `SELECT name, expression, unit_offset, comment, url, prefix, created_at FROM custom_units`

// Get returns the record stored under name.
func (s *Store) Get(ctx context.Context, name string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE name = ?`, name)
	rec, err := scanRecord(row)
	if err != nil {
		return Record{}, fmt.Errorf("get unit %q: %w", name, convertDBError(err))
	}
	return rec, nil
}

// All returns every stored record in insertion order.
func (s *Store) All(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list units: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return records, nil
}

// Delete removes a stored definition. Units already loaded into a registry
// stay there; the deletion takes effect on the next load.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM custom_units WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete unit %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete unit %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete unit %q: %w", name, ErrNotFound)
	}
	s.logger.Debug("custom unit deleted", zap.String("name", name))
	return nil
}

// LoadInto registers every stored unit with reg, in insertion order so that
// definitions may refer to earlier ones. It returns the number loaded.
func (s *Store) LoadInto(ctx context.Context, reg *registry.Registry) (int, error) {
	records, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	for i, rec := range records {
		if err := Register(reg, rec); err != nil {
			return i, err
		}
	}
	s.logger.Debug("custom units loaded", zap.Int("count", len(records)))
	return len(records), nil
}

// Register adds rec to reg and expands its prefixes.
func Register(reg *registry.Registry, rec Record) error {
	return reg.Define(rec.Name, rec.Definition(), rec.Prefix)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var prefix string
	if err := sc.Scan(&rec.Name, &rec.Expression, &rec.Offset, &rec.Comment, &rec.URL, &prefix, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	rec.Prefix = registry.PrefixRange(prefix)
	return rec, nil
}

// convertDBError maps driver errors onto the store's sentinels.
func convertDBError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			return ErrExists
		}
	}
	return err
}
