package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-snip-sink/internal/logger"
	"github.com/MKhiriev/go-snip-sink/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler создаёт Handler с nop-логгером (без вывода в stdout).
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

// ---- Helpers ----

func executeWithTraceID(h *Handler, traceIDHeader string) (*httptest.ResponseRecorder, *http.Request) {
	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.WriteHeader(http.StatusOK)
	})

	middleware := h.withTraceID(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceIDHeader != "" {
		req.Header.Set("X-Trace-ID", traceIDHeader)
	}

	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr, capturedReq
}

// ---- Таблица: заголовок ответа X-Trace-ID ----

func TestWithTraceID_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		requestTraceID  string
		wantSameTraceID bool // true — ответный header должен совпасть с requestTraceID
		wantValidUUID   bool // true — ответный header должен быть валидным UUID
		wantStatus      int
	}{
		{
			name:            "trace ID from request header is reused",
			requestTraceID:  "my-custom-trace-id",
			wantSameTraceID: true,
			wantStatus:      http.StatusOK,
		},
		{
			name:           "no trace ID in request, UUID generated",
			requestTraceID: "",
			wantValidUUID:  true,
			wantStatus:     http.StatusOK,
		},
		{
			name:            "UUID string as incoming trace ID",
			requestTraceID:  "550e8400-e29b-41d4-a716-446655440000",
			wantSameTraceID: true,
			wantStatus:      http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()

			rr, capturedReq := executeWithTraceID(h, tt.requestTraceID)

			require.NotNil(t, capturedReq, "next handler was not called")
			assert.Equal(t, tt.wantStatus, rr.Code)

			gotTraceID := rr.Header().Get("X-Trace-ID")
			require.NotEmpty(t, gotTraceID)

			if tt.wantSameTraceID {
				assert.Equal(t, tt.requestTraceID, gotTraceID)
			}
			if tt.wantValidUUID {
				_, err := uuid.Parse(gotTraceID)
				assert.NoError(t, err, "generated trace ID is not a valid UUID")
			}

			// Обработчик видит тот же trace ID через контекст запроса.
			ctxTraceID, ok := utils.GetTraceIDFromContext(capturedReq.Context())
			require.True(t, ok, "trace ID missing from request context")
			assert.Equal(t, gotTraceID, ctxTraceID)
		})
	}
}

func TestWithTraceID_HeaderSetBeforeHandlerRuns(t *testing.T) {
	h := newTestHandler()

	var headerDuringHandler string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headerDuringHandler = w.Header().Get("X-Trace-ID")
	})

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotEmpty(t, headerDuringHandler, "trace ID header must be visible to the handler")
	assert.Equal(t, headerDuringHandler, rr.Header().Get("X-Trace-ID"))
}
