package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInput, ErrInternal, ErrUnavailable}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("db connection lost")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "db connection lost")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("product", "42")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "42")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidRangeFilter(t *testing.T) {
	err := InvalidRangeFilter("score", "requires two values (min, max)")
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_RANGE_FILTER", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Contains(t, err.Message, "score")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUploadFailed_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("cdn timeout")
	err := UploadFailed(cause)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.True(t, errors.Is(err, cause))
	assert.NotContains(t, err.Message, "cdn timeout")
}

func TestPersistenceFailed(t *testing.T) {
	err := PersistenceFailed(fmt.Errorf("insert: broken pipe"))
	assert.Equal(t, "PERSISTENCE_FAILED", err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestIndexQueryFailed_HidesCauseFromMessage(t *testing.T) {
	err := IndexQueryFailed(fmt.Errorf("es: shard failure on node-3"))
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.NotContains(t, err.Message, "node-3")
}

// --- HTTPStatus mapping ---

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", NotFound("product", "1"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("outer: %w", ErrNotFound), http.StatusNotFound},
		{"wrapped invalid input", fmt.Errorf("outer: %w", ErrInvalidInput), http.StatusBadRequest},
		{"unavailable", ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
