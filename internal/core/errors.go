package core

import (
	"errors"
	"fmt"
)

// ErrFileNotFound is matched by every *FileNotFoundError through errors.Is.
var ErrFileNotFound = errors.New("file not found")

// FileNotFoundError reports a missing input: the database file or an import source.
type FileNotFoundError struct {
	Kind string // "database" or "source"
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.Kind, e.Path)
}

func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// StorageError wraps a failure raised by the storage engine while running Op.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err carries a *StorageError anywhere in its chain.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
