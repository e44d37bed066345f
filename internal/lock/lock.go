// Package lock guards a local folder against concurrent clone and push runs.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Name is the lock file created inside a locked folder.
const Name = ".gist.lock"

// ErrLocked is returned when another process holds the folder lock.
var ErrLocked = errors.New("lock: folder is locked by another process")

// Lock is an exclusive advisory lock on a folder.
type Lock struct {
	file *os.File
}

// Acquire takes the folder lock without blocking, creating dir when missing.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("lock: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, Name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("lock: open %s: %w", path, err)
	}
	if err := tryLockExclusive(f); err != nil {
		_ = f.Close()
		if errors.Is(err, errWouldBlock) {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
		}
		return nil, fmt.Errorf("lock: %s: %w", path, err)
	}
	return &Lock{file: f}, nil
}

// Release drops the lock. The lock file stays in place so every process
// contends on the same inode.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlockFile(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}
