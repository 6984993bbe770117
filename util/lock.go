package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrLocked = errors.New("device is in use by another process")

// FileLock is an exclusive advisory lock held on a file in the temp dir.
type FileLock struct {
	f *os.File
}

// LockName takes the lock named name without blocking.
func LockName(name string) (l *FileLock, err error) {
	name = strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
	path := filepath.Join(os.TempDir(), name+".lock")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("util: open lock file '%s': %w", path, err)
	}

	if err = lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("util: lock '%s': %w", path, err)
	}

	return &FileLock{f: f}, nil
}

func (l *FileLock) Unlock() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = unlockFile(l.f)
	err := l.f.Close()
	l.f = nil
	return err
}
