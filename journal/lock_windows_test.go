//go:build windows

package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenHandleBlocksReplace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.csv")
	tbl := NewCSV(path, SnipSchema)
	require.NoError(t, tbl.Append(testEntry(0)))

	// os.Open shares read and write but not delete, like a spreadsheet
	// program holding the workbook without an owner file.
	f, err := os.Open(path)
	require.NoError(t, err)

	err = tbl.Append(testEntry(1))
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, f.Close())
	require.NoError(t, tbl.Append(testEntry(1)))

	got, err := tbl.Entries()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
