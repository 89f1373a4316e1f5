// Package sqldb holds the SQL shared by the SQLite and PostgreSQL stores.
// Queries are written with "?" placeholders and rebound per dialect.
package sqldb

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/tutorly/internal/storage"
)

type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// Rebind rewrites "?" placeholders into the dialect's bind syntax.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Placeholder returns the first bind parameter in the dialect's syntax.
func (d Dialect) Placeholder() string {
	return d.Rebind("?")
}

// Repo implements the data methods of storage.Provider over a *sql.DB.
type Repo struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func New(db *sql.DB, dialect Dialect) *Repo {
	return &Repo{db: db, dialect: dialect, now: time.Now}
}

func (r *Repo) exec(query string, args ...any) (sql.Result, error) {
	return r.db.Exec(r.dialect.Rebind(query), args...)
}

func (r *Repo) query(query string, args ...any) (*sql.Rows, error) {
	return r.db.Query(r.dialect.Rebind(query), args...)
}

func (r *Repo) queryRow(query string, args ...any) *sql.Row {
	return r.db.QueryRow(r.dialect.Rebind(query), args...)
}

// execOne runs a statement that must touch exactly one row.
func (r *Repo) execOne(what, id, query string, args ...any) error {
	res, err := r.exec(query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", what, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", what, id, err)
	}
	if n == 0 {
		return notFound(what, id)
	}
	return nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
}

func wrapNoRows(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(what, id)
	}
	return fmt.Errorf("%s %s: %w", what, id, err)
}

// ServerTime reads the database clock in UTC.
func (r *Repo) ServerTime() (time.Time, error) {
	q := `SELECT strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`
	if r.dialect == Postgres {
		q = `SELECT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.MS"Z"')`
	}

	var raw string
	if err := r.db.QueryRow(q).Scan(&raw); err != nil {
		return time.Time{}, fmt.Errorf("failed to read server time: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse server time %q: %w", raw, err)
	}
	return t, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
