//go:build windows

package journal

import (
	"errors"

	"golang.org/x/sys/windows"
)

func isLockError(err error) bool {
	if errors.Is(err, windows.ERROR_SHARING_VIOLATION) ||
		errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
		return true
	}
	// MoveFileEx cannot replace a file another process opened without
	// FILE_SHARE_DELETE, which is how Excel holds a workbook.
	var re *replaceError
	return errors.As(err, &re) && errors.Is(re, windows.ERROR_ACCESS_DENIED)
}
