package storage

import (
	"errors"
	"fmt"
)

// ErrStorage marks persistence failures. Callers match it with errors.Is.
var ErrStorage = errors.New("storage error")

// StorageError wraps an underlying I/O failure with the operation and key.
type StorageError struct {
	Op  string // get, set, delete
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is reports ErrStorage so errors.Is(err, ErrStorage) matches.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
