package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"hello":"world"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes the trace ID from context", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		traceID := GetTraceID(req.Context())

		RespondWithError(rec, req, http.StatusNotFound, "Task not found")

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Task not found", resp.Error)
		assert.Equal(t, traceID, resp.TraceID)
	})

	t.Run("omits trace ID when absent", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

		assert.NotContains(t, rec.Body.String(), "trace_id")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	t.Run("never leaks the raw error to the client", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		rawErr := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
		RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
			"An unexpected error occurred", rawErr)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "An unexpected error occurred", resp.Error)
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})

	t.Run("attaches field violations when provided", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", nil)

		fields := []FieldError{{Field: "title", Message: "is required"}}
		RespondWithErrorAndLog(rec, req, http.StatusBadRequest,
			"Validation failed", errors.New("validation"), WithFields(fields))

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Fields, 1)
		assert.Equal(t, "title", resp.Fields[0].Field)
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes a valid body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"hello"}`))

		var payload struct {
			Title string `json:"title"`
		}
		require.NoError(t, DecodeJSON(req, &payload))
		assert.Equal(t, "hello", payload.Title)
	})

	t.Run("rejects a broken body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))

		var payload map[string]any
		assert.Error(t, DecodeJSON(req, &payload))
	})
}
