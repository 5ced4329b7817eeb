package journal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// codec reads and writes a whole table file.
type codec interface {
	read(path string) ([][]string, error)
	write(w io.Writer, rows [][]string) error
}

// fileTable implements Table over a file rewritten on every append.
type fileTable struct {
	path   string
	schema Schema
	codec  codec
}

func (t *fileTable) Path() string { return t.path }

func (t *fileTable) Close() error { return nil }

// Append loads the table, appends the entry's row and replaces the file.
// A missing file is created with the schema header.
func (t *fileTable) Append(e Entry) error {
	if err := checkHeld(t.path); err != nil {
		return err
	}

	rows, err := t.load()
	if errors.Is(err, fs.ErrNotExist) {
		rows = [][]string{t.schema.Header()}
	} else if err != nil {
		return err
	}

	rows = append(rows, t.schema.Row(e))
	if err := writeAtomic(t.path, func(w io.Writer) error { return t.codec.write(w, rows) }); err != nil {
		return classify("write", t.path, err)
	}
	return nil
}

// Entries returns the data rows in file order.
func (t *fileTable) Entries() ([]Entry, error) {
	rows, err := t.load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		e, err := t.schema.Parse(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", t.path, i+2, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Rows returns the raw table including the header.
func (t *fileTable) Rows() ([][]string, error) {
	return t.load()
}

// load reads the table and checks its header. An empty file reads as a
// header-only table.
func (t *fileTable) load() ([][]string, error) {
	if _, err := os.Stat(t.path); err != nil {
		return nil, err
	}

	rows, err := t.codec.read(t.path)
	if err != nil {
		return nil, classify("read", t.path, err)
	}
	if len(rows) == 0 {
		return [][]string{t.schema.Header()}, nil
	}
	if !t.schema.MatchesHeader(rows[0]) {
		return nil, fmt.Errorf("%s: got header %q, want %q: %w", t.path, rows[0], t.schema.Header(), ErrSchemaMismatch)
	}
	return rows, nil
}

// writeAtomic writes to a temporary sibling of path and renames it over path.
func writeAtomic(path string, fn func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(name)
		}
	}()

	if err = fn(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(name, path); err != nil {
		return &replaceError{err: err}
	}
	return nil
}

// replaceError is a failed rename of the finished temporary file over the
// table. Windows reports a target held open elsewhere as access denied here.
type replaceError struct {
	err error
}

func (e *replaceError) Error() string { return "replace: " + e.err.Error() }

func (e *replaceError) Unwrap() error { return e.err }
