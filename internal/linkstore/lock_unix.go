//go:build unix

package linkstore

import (
	"os"
	"syscall"
)

// platformLock acquires an exclusive non-blocking lock using flock.
func platformLock(f *os.File) error {
	err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err != nil {
		if err == syscall.EWOULDBLOCK {
			return errLockHeld
		}
		return err
	}
	return nil
}

// platformUnlock releases the lock.
func platformUnlock(f *os.File) {
	syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}
