package contract

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrDataNotFound = errors.New("data not found")
	ErrEmptyProject = errors.New("empty project")
)

// DataNotFoundError reports a required input table that is missing or malformed.
// It aborts the computation of the whole version.
type DataNotFoundError struct {
	Path string
	Err  error
}

func (e *DataNotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("required data %s not found", e.Path)
	}
	return fmt.Sprintf("required data %s not found: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DataNotFoundError) Unwrap() error {
	return e.Err
}

// Is matches ErrDataNotFound.
func (e *DataNotFoundError) Is(target error) bool {
	return target == ErrDataNotFound
}

// EmptyProjectError reports a version without any analyzable class.
type EmptyProjectError struct {
	Dir string
}

func (e *EmptyProjectError) Error() string {
	return fmt.Sprintf("%s has no classes", e.Dir)
}

// Is matches ErrEmptyProject.
func (e *EmptyProjectError) Is(target error) bool {
	return target == ErrEmptyProject
}
