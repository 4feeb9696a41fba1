package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"sorter/internal/failure"
)

const component = "runlock"

// Lock is a held per-root lock.
type Lock struct {
	root string
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for root inside lockDir.
func PathFor(lockDir, root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for root without blocking. A root already locked by
// another process yields failure.ErrLocked.
func Acquire(lockDir, root string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, failure.Wrap(failure.ErrFilesystem, component, "create lock dir", lockDir, err)
	}
	path := PathFor(lockDir, root)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, failure.Wrap(failure.ErrFilesystem, component, "acquire lock", path, err)
	}
	if !ok {
		return nil, failure.Wrap(failure.ErrLocked, component, "acquire lock",
			fmt.Sprintf("another sorter run is already organizing %s", root), nil)
	}
	return &Lock{root: root, path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the root. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
