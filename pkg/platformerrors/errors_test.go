package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCarriesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	err := NewError(ctx, LayerDomain, ErrorTypeNotFound, "tool not found", nil, "")

	assert.Equal(t, "req-123", err.GetRequestID())
	assert.NotEmpty(t, err.GetUUID())
	assert.Equal(t, ErrorTypeNotFound, err.GetErrorType())
}

func TestAsErrorKeepsTypeAndCategory(t *testing.T) {
	ctx := context.Background()
	inner := NewErrorWithContext(ctx, LayerInfrastructure, ErrorTypeExternal, "upstream error", nil, "upstream-001",
		map[string]any{ContextKeyCategory: "timeout"})

	wrapped := AsError(ctx, LayerDomain, inner, "call tool")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrorTypeExternal, wrapped.Type)
	assert.Equal(t, "upstream-001", wrapped.UUID)
	assert.Equal(t, "timeout", wrapped.Category())
	assert.True(t, IsErrorType(wrapped, ErrorTypeExternal))
}

func TestAsErrorPlainErrorBecomesInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerHandler, errors.New("boom"), "handler failed")

	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
	assert.Nil(t, AsError(context.Background(), LayerHandler, nil, "noop"))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		errType ErrorType
		status  int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.errType), func(t *testing.T) {
			assert.Equal(t, tc.status, ErrorTypeToHTTPStatus(tc.errType))
		})
	}

	assert.Equal(t, ErrorTypeNotFound, HTTPStatusToErrorType(http.StatusNotFound))
	assert.Equal(t, ErrorTypeExternal, HTTPStatusToErrorType(http.StatusBadGateway))
	assert.Equal(t, ErrorTypeExternal, HTTPStatusToErrorType(http.StatusGatewayTimeout))
	assert.Equal(t, ErrorTypeValidation, HTTPStatusToErrorType(http.StatusBadRequest))
}
