//go:build !windows

package journal

import (
	"errors"
	"syscall"
)

func isLockError(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EWOULDBLOCK)
}
