package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Guard holds an exclusive file lock around the ledger's read-modify-write so
// two overlapping runs cannot double-select items or lose each other's commit.
type Guard struct {
	lock *flock.Flock
	path string
}

// Acquire takes the lock next to the ledger file, failing immediately when
// another run holds it.
func Acquire(ledgerPath string) (*Guard, error) {
	lockPath := ledgerPath + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another mangareel run holds the ledger lock")
	}
	return &Guard{lock: lock, path: lockPath}, nil
}

// Release drops the lock. Safe to call on a nil guard.
func (g *Guard) Release() error {
	if g == nil || g.lock == nil {
		return nil
	}
	return g.lock.Unlock()
}

// Path returns the lock file location.
func (g *Guard) Path() string {
	if g == nil {
		return ""
	}
	return g.path
}
