package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rezkam/todo/internal/infrastructure/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echo writes the request body back so tests can see what reached the handler.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_, _ = w.Write(body)
})

// unsizedReader hides its length so httptest leaves ContentLength unset.
type unsizedReader struct{ io.Reader }

func TestMaxBodyBytes(t *testing.T) {
	handler := middleware.MaxBodyBytes(16)(echo)

	tests := []struct {
		name       string
		body       io.Reader
		wantStatus int
		wantBody   string
	}{
		{
			name:       "within limit passes through",
			body:       strings.NewReader(`{"id":"abc"}`),
			wantStatus: http.StatusOK,
			wantBody:   `{"id":"abc"}`,
		},
		{
			name:       "exactly at limit passes through",
			body:       strings.NewReader(strings.Repeat("x", 16)),
			wantStatus: http.StatusOK,
			wantBody:   strings.Repeat("x", 16),
		},
		{
			name:       "declared length over limit is rejected early",
			body:       strings.NewReader(strings.Repeat("x", 17)),
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "undeclared length over limit is rejected while reading",
			body:       unsizedReader{strings.NewReader(strings.Repeat("x", 64))},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "no body",
			body:       nil,
			wantStatus: http.StatusOK,
			wantBody:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/todo/insert", tt.body)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusRequestEntityTooLarge {
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.JSONEq(t, `{"error":{"code":"PAYLOAD_TOO_LARGE","message":"request body exceeds size limit"}}`, w.Body.String())
				return
			}
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
