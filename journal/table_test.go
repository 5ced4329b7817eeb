package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(i int) Entry {
	return Entry{
		Time:      time.Date(2025, 3, 4, 10, 0, i, 0, time.Local),
		Ticker:    fmt.Sprintf("T%02d", i),
		Note:      fmt.Sprintf("note %d", i),
		ImagePath: fmt.Sprintf("Trading_Gorselleri/Log_20250304_1000%02d.png", i),
	}
}

func openers(schema Schema) map[string]func(t *testing.T, dir string) Table {
	return map[string]func(t *testing.T, dir string) Table{
		"xlsx": func(t *testing.T, dir string) Table {
			return NewXLSX(filepath.Join(dir, "journal.xlsx"), schema)
		},
		"csv": func(t *testing.T, dir string) Table {
			return NewCSV(filepath.Join(dir, "journal.csv"), schema)
		},
		"sqlite": func(t *testing.T, dir string) Table {
			j, err := NewSQLite(filepath.Join(dir, "journal.db"))
			require.NoError(t, err)
			return j
		},
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	for name, open := range openers(SnipSchema) {
		name, open := name, open
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tbl := open(t, t.TempDir())
			t.Cleanup(func() { _ = tbl.Close() })

			var want []Entry
			for i := 0; i < 5; i++ {
				e := testEntry(i)
				require.NoError(t, tbl.Append(e))
				want = append(want, e)
			}

			got, err := tbl.Entries()
			require.NoError(t, err)

			opts := []cmp.Option{cmpopts.IgnoreFields(Entry{}, "ID"), cmpopts.EquateApproxTime(0)}
			if diff := cmp.Diff(want, got, opts...); diff != "" {
				t.Fatalf("entries mismatch (-want +got):\n%s", diff)
			}

			again, err := tbl.Entries()
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestTextCellsKeepWhitespace(t *testing.T) {
	t.Parallel()

	for name, open := range openers(SnipSchema) {
		name, open := name, open
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tbl := open(t, t.TempDir())
			t.Cleanup(func() { _ = tbl.Close() })

			e := testEntry(3)
			e.Note = "  indented\nsecond line  "
			require.NoError(t, tbl.Append(e))

			got, err := tbl.Entries()
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, e.Note, got[0].Note)
		})
	}
}

func TestFileTableCreatesHeader(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"xlsx", "csv"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tbl := openers(SnipSchema)[name](t, t.TempDir())
			require.NoError(t, tbl.Append(testEntry(1)))

			rows, err := tbl.(*fileTable).Rows()
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, []string{"Date", "Time", "Ticker/Instrument", "Note", "ImagePath"}, rows[0])
			assert.Equal(t, []string{"2025-03-04", "10:00:01", "T01", "note 1", "Trading_Gorselleri/Log_20250304_100001.png"}, rows[1])
		})
	}
}

func TestQuickSchemaKeepsPrice(t *testing.T) {
	t.Parallel()

	tbl := NewCSV(filepath.Join(t.TempDir(), "quick.csv"), QuickSchema)
	e := testEntry(2)
	e.Price = "42.15"
	require.NoError(t, tbl.Append(e))

	rows, err := tbl.(*fileTable).Rows()
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Time", "Ticker", "Price", "Note", "Screenshot"}, rows[0])
	assert.Equal(t, "42.15", rows[1][3])

	got, err := tbl.Entries()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "42.15", got[0].Price)
}

func TestLockedFileTable(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"xlsx", "csv"} {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			tbl := openers(SnipSchema)[name](t, dir)
			require.NoError(t, tbl.Append(testEntry(0)))

			owner := LockFiles(tbl.Path())[0]
			require.NoError(t, os.WriteFile(owner, []byte("someone"), 0644))

			err := tbl.Append(testEntry(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLocked))

			got, err := tbl.Entries()
			require.NoError(t, err)
			assert.Len(t, got, 1)

			// Releasing the file and resubmitting adds exactly one row.
			require.NoError(t, os.Remove(owner))
			require.NoError(t, tbl.Append(testEntry(1)))

			got, err = tbl.Entries()
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "T01", got[1].Ticker)
		})
	}
}

func TestWriteAtomicReplaceFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.csv")
	// A non-empty directory in the way makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(path, "child"), 0755))

	err := writeAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "Date\n")
		return err
	})
	var re *replaceError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, err.Error(), "replace: ")

	tmps, err := filepath.Glob(filepath.Join(dir, ".journal.csv.*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, tmps)
}

func TestLibreOfficeLockDetected(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.xlsx")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".~lock.journal.xlsx#"), nil, 0644))

	err := NewXLSX(path, SnipSchema).Append(testEntry(0))
	assert.ErrorIs(t, err, ErrLocked)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLockedSQLite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	require.NoError(t, j.Append(testEntry(0)))

	other, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })

	ctx := context.Background()
	conn, err := other.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "BEGIN EXCLUSIVE")
	require.NoError(t, err)

	err = j.Append(testEntry(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = conn.ExecContext(ctx, "COMMIT")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.NoError(t, j.Append(testEntry(1)))
	got, err := j.Entries()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSchemaMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0644))

	err := NewCSV(path, SnipSchema).Append(testEntry(0))
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.False(t, errors.Is(err, ErrLocked))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,2,3\n", string(data))
}

func TestEmptyFileReadsAsHeaderOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	tbl := NewCSV(path, SnipSchema)
	got, err := tbl.Entries()
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, tbl.Append(testEntry(3)))
	got, err = tbl.Entries()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMissingTableHasNoEntries(t *testing.T) {
	t.Parallel()

	got, err := NewXLSX(filepath.Join(t.TempDir(), "none.xlsx"), SnipSchema).Entries()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenByFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		format, path string
		wantErr      bool
	}{
		{"xlsx", "a.xlsx", false},
		{"", "b.csv", false},
		{"sqlite", "c.db", false},
		{"", "d.ods", true},
	}

	for _, tt := range tests {
		tbl, err := Open(tt.format, filepath.Join(dir, tt.path), SnipSchema)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, filepath.Join(dir, tt.path), tbl.Path())
		assert.NoError(t, tbl.Close())
	}
}

func TestWaitUnlocked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.xlsx")
	owner := LockFiles(path)[0]
	require.NoError(t, os.WriteFile(owner, nil, 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- WaitUnlocked(ctx, path) }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.Remove(owner))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("WaitUnlocked did not return after the owner file was removed")
	}
}

func TestWaitUnlockedCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.xlsx")
	require.NoError(t, os.WriteFile(LockFiles(path)[1], nil, 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, WaitUnlocked(ctx, path), context.DeadlineExceeded)
}
