package store_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slackdb/slackdb-server/internal/store"
)

func TestError_Error(t *testing.T) {
	assert.Equal(t, "resource not found", store.ErrNotFound.Error())

	err := store.ErrAlreadyExists.WithCause(errors.New("UNIQUE constraint failed: brands.name"))
	assert.Contains(t, err.Error(), "resource already exists")
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestError_IsFollowsSentinel(t *testing.T) {
	err := fmt.Errorf("insert brand: %w", store.ErrAlreadyExists.WithMessage("brand Petzl exists"))

	assert.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.NotErrorIs(t, err, store.ErrConflict, "same status, different sentinel")
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestError_HTTPCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, store.ErrNotFound.HTTPCode())
	assert.Equal(t, http.StatusConflict, store.ErrConflict.HTTPCode())
	assert.Equal(t, http.StatusBadRequest, store.ErrInvalidInput.WithMessage("x").HTTPCode())
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := store.ErrNotFound.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, store.ErrNotFound.Err, "sentinel must not be mutated")
}
