package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrInvalidArchive", ErrInvalidArchive},
		{"ErrNoKML", ErrNoKML},
		{"ErrInvalidKML", ErrInvalidKML},
		{"ErrPublishUnavailable", ErrPublishUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoKML_Wrapped(t *testing.T) {
	err := fmt.Errorf("read regular.kmz: %w", ErrNoKML)
	assert.True(t, errors.Is(err, ErrNoKML))
	assert.False(t, errors.Is(err, ErrInvalidArchive))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("area", "area ID is required")

	assert.Equal(t, "invalid area: area ID is required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))

	var ve *ValidationError
	wrapped := fmt.Errorf("merge: %w", err)
	assert.True(t, errors.As(wrapped, &ve))
	assert.Equal(t, "area", ve.Field)
}

func TestValidationError_NoField(t *testing.T) {
	err := NewValidationError("", "nothing to do")
	assert.Equal(t, "invalid input: nothing to do", err.Error())
}
