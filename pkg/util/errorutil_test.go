package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		inner := NewValidationError("Invalid request", map[string]any{"field": "From"})
		de := ToDomainError(fmt.Errorf("handler: %w", inner))
		require.NotNil(t, de)
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "From", de.Details["field"])
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := errors.New("redis: connection refused")
		de := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.ErrorIs(t, de, cause)
	})
}

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{http.StatusBadGateway, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			de := FromHTTPStatus(tt.status, "boom")
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, "boom", de.Error())
		})
	}
}
