package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeCacheIO, CategoryIO, SeverityError},
		{ErrCodeUnknownBook, CategoryValidation, SeverityError},
		{ErrCodeEmptyQuery, CategoryValidation, SeverityError},
		{ErrCodeIndexUnavailable, CategoryInternal, SeverityFatal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestError_Is(t *testing.T) {
	err := Newf(ErrCodeUnknownBook, "unknown book %q", "Ddd")
	assert.True(t, stderrors.Is(err, New(ErrCodeUnknownBook, "", nil)))
	assert.False(t, stderrors.Is(err, New(ErrCodeEmptyQuery, "", nil)))
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk exploded")
	err := Wrap(ErrCodeCacheIO, cause)
	require.NotNil(t, err)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeCacheIO, nil))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeIndexUnavailable, "gone", nil)))
	assert.False(t, IsFatal(New(ErrCodeVerseOutOfRange, "no verse 999", nil)))
	assert.False(t, IsFatal(fmt.Errorf("plain")))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(New(ErrCodeInvalidRange, "end before start", nil)))
	assert.False(t, IsValidation(New(ErrCodeInternal, "bug", nil)))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeUnknownTranslation, "no such translation", nil).
		WithDetail("translation", "niv")
	assert.Equal(t, "niv", err.Details["translation"])
	assert.Equal(t, ErrCodeUnknownTranslation, GetCode(err))
}
