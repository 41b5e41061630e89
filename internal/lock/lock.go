// pattern: Imperative Shell

package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = "gt.lock"

// Lock is an exclusive advisory lock held while gt mutates build settings.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the lock in dataDir without blocking. It fails when another
// gt invocation already holds it.
func Acquire(dataDir string) (*Lock, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another gt invocation is modifying a build; try again when it finishes")
	}
	return &Lock{fl: fl}, nil
}

// Release unlocks. Safe to call on a nil Lock.
func (l *Lock) Release() {
	if l != nil && l.fl != nil {
		_ = l.fl.Unlock()
	}
}
