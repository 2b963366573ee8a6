package contract

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataNotFoundError(t *testing.T) {
	err := fmt.Errorf("load version: %w", &DataNotFoundError{Path: "jsoup-Class.csv", Err: fs.ErrNotExist})

	assert.ErrorIs(t, err, ErrDataNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrEmptyProject)

	var dnf *DataNotFoundError
	assert.True(t, errors.As(err, &dnf))
	assert.Equal(t, "jsoup-Class.csv", dnf.Path)
	assert.Contains(t, err.Error(), "jsoup-Class.csv")
}

func TestEmptyProjectError(t *testing.T) {
	err := &EmptyProjectError{Dir: "results/1.8.1"}
	assert.ErrorIs(t, err, ErrEmptyProject)
	assert.Equal(t, "results/1.8.1 has no classes", err.Error())
}
