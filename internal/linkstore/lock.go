package linkstore

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mesh-intelligence/loom/pkg/types"
)

// errLockHeld is returned by the platform lock when another process holds
// the advisory lock.
var errLockHeld = errors.New("lock held")

// Lock acquisition retries briefly before reporting contention. Mutations
// are short, so a handful of attempts rides out a concurrent writer without
// turning into a queue.
const (
	lockAttempts   = 5
	lockRetryDelay = 100 * time.Millisecond
)

// storeLock is an advisory file lock guarding read-modify-write cycles on
// the link document.
type storeLock struct {
	path string
	file *os.File
}

func newStoreLock(path string) *storeLock {
	return &storeLock{path: path}
}

// acquire takes the exclusive lock with bounded retry. Persistent contention
// surfaces as a conflict so callers can report it instead of hanging.
func (l *storeLock) acquire() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("opening lock file %s: %v: %w", l.path, err, types.ErrIO)
	}
	for attempt := 0; ; attempt++ {
		err := platformLock(f)
		if err == nil {
			l.file = f
			return nil
		}
		if !errors.Is(err, errLockHeld) {
			f.Close()
			return fmt.Errorf("locking %s: %v: %w", l.path, err, types.ErrIO)
		}
		if attempt+1 >= lockAttempts {
			f.Close()
			return fmt.Errorf("link store is locked by another process: %w", types.ErrConflict)
		}
		time.Sleep(lockRetryDelay)
	}
}

// release drops the lock. The lock file itself stays behind; only the flock
// state matters.
func (l *storeLock) release() error {
	if l.file == nil {
		return nil
	}
	platformUnlock(l.file)
	err := l.file.Close()
	l.file = nil
	return err
}
