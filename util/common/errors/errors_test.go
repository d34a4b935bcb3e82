package errors

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesInvalidArgument(t *testing.T) {
	err := NewValidationError("tag", "is reserved")
	assert.EqualError(t, err, "validation failed for tag: is reserved")
	assert.True(t, Is(err, ErrInvalidArgument))

	var vErr *ValidationError
	assert.True(t, As(Wrap(err, "create file"), &vErr))
	assert.Equal(t, "tag", vErr.Field)
}

func TestWrappedErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		target  error
		message string
	}{
		{
			name:    "file",
			err:     NewFileError("airborne-config.json", "read", os.ErrNotExist),
			target:  os.ErrNotExist,
			message: "read airborne-config.json: file does not exist",
		},
		{
			name:    "bundle with platform",
			err:     NewBundleError("bundle", "android", ErrInvalidOperation),
			target:  ErrInvalidOperation,
			message: "bundle (android): invalid operation",
		},
		{
			name:    "bundle without platform",
			err:     NewBundleError("scan", "", ErrNotFound),
			target:  ErrNotFound,
			message: "scan: resource not found",
		},
		{
			name:    "vcs",
			err:     NewVCSError("read HEAD", "/src/app", ErrNotFound),
			target:  ErrNotFound,
			message: "git read HEAD in /src/app: resource not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.message)
			assert.True(t, errors.Is(tt.err, tt.target))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
}
