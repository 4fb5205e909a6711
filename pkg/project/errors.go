package project

import (
	"errors"
	"fmt"
)

var (
	// ErrRootNotFound means the project root does not exist.
	ErrRootNotFound = errors.New("project root not found")
	// ErrNotDirectory means the project root is a file.
	ErrNotDirectory = errors.New("project root is not a directory")
	// ErrNotRecognized means no Next.js dependency, config file or route directory was found.
	ErrNotRecognized = errors.New("not a Next.js project")
)

// Error is a fatal project detection error.
type Error struct {
	Root string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Root, e.Err)
}

// Unwrap returns the sentinel for errors.Is support.
func (e *Error) Unwrap() error {
	return e.Err
}
