package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/chartlog/pkg/id"
)

// SQLite is a journal table kept in an SQLite database. Rows are keyed by
// ULID so ordering by id is submission order.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (creating if needed) the journal database at path. Busy
// waiting is disabled: a database held by another writer fails immediately
// with ErrLocked instead of blocking the UI.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=0")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, sqliteErr("create schema", path, err)
	}

	return &SQLite{db: db, path: path}, nil
}

func (j *SQLite) Path() string { return j.path }

// Append inserts the entry. Entries without an ID get one derived from their
// timestamp.
func (j *SQLite) Append(e Entry) error {
	if e.ID == "" {
		e.ID = id.At(e.Time)
	}

	_, err := j.db.Exec(`
		INSERT INTO entries
		(id, date, time, ticker, price, note, image_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date(), e.Clock(), e.Ticker, e.Price, e.Note, e.ImagePath,
	)
	if err != nil {
		return sqliteErr("insert", j.path, err)
	}
	return nil
}

// Entries returns all entries in submission order.
func (j *SQLite) Entries() ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT id, date, time, ticker, price, note, image_path
		FROM entries
		ORDER BY id ASC`)
	if err != nil {
		return nil, sqliteErr("query", j.path, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			rec         Entry
			date, clock string
		)
		if err := rows.Scan(&rec.ID, &date, &clock, &rec.Ticker, &rec.Price, &rec.Note, &rec.ImagePath); err != nil {
			return nil, err
		}
		if rec.Time, err = parseStamp(date, clock); err != nil {
			return nil, fmt.Errorf("entry %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// sqliteErr tags busy and locked database errors with ErrLocked.
func sqliteErr(op, path string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && (se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%s %s: %w: %w", op, path, ErrLocked, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}
