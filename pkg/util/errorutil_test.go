package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	t.Parallel()

	err := NewDuplicateEmail()
	de := ToDomainError(err)
	assert.Equal(t, "DUPLICATE_EMAIL", de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)

	wrapped := fmt.Errorf("service: %w", err)
	assert.Equal(t, de.Code, ToDomainError(wrapped).Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	t.Parallel()

	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorHidesInternals(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	de := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}
