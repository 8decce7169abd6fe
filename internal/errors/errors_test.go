package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("Webbing %d not found", 7)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrConflict))
	assert.Equal(t, "Webbing 7 not found", err.Error())
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("ingest rollers: %w", Validationf("unknown currency %q", "xyz"))

	assert.True(t, Is(err, ErrValidation))

	var domainErr *Error
	assert.True(t, As(err, &domainErr))
	assert.Equal(t, CodeValidation, domainErr.Code)
}

func TestError_WithCause(t *testing.T) {
	cause := New("disk full")
	err := Internal("insert failed").WithCause(cause)

	assert.Equal(t, "insert failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestError_WithDetailsKeepsCode(t *testing.T) {
	err := ErrValidation.WithDetails(map[string]string{"name": "is required"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.NotNil(t, err.Details)
	assert.Nil(t, ErrValidation.Details, "sentinel must not be mutated")
}

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeConflict, http.StatusConflict},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}
