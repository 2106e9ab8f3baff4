package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	t.Run("passes domain errors through", func(t *testing.T) {
		err := NewConflict("username already taken", nil)
		mapped := ToDomainError(err)
		require.Equal(t, "CONFLICT", mapped.Code)
		require.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	})

	t.Run("wrapped domain errors unwrap", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", NewForbidden("insufficient role"))
		mapped := ToDomainError(err)
		require.Equal(t, "FORBIDDEN", mapped.Code)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		mapped := ToDomainError(pgx.ErrNoRows)
		require.Equal(t, "NOT_FOUND", mapped.Code)
	})

	t.Run("deadline maps to upstream", func(t *testing.T) {
		mapped := ToDomainError(context.DeadlineExceeded)
		require.Equal(t, "UPSTREAM_UNAVAILABLE", mapped.Code)
		require.Equal(t, http.StatusServiceUnavailable, mapped.HTTPStatus)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		mapped := ToDomainError(errors.New("boom"))
		require.Equal(t, "INTERNAL_ERROR", mapped.Code)
		require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		require.Nil(t, ToDomainError(nil))
	})
}
