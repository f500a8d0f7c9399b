package http

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Status(http.StatusCreated).
		Body(map[string]int{"n": 1}).
		Write(w)

	if w.Code != http.StatusCreated {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusCreated)
	}
	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Body.String() != "{\"n\":1}\n" {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestJSONResponseBuilder_CustomHeader(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().
		Header("X-Custom", "value").
		Write(w)

	if w.Header().Get("X-Custom") != "value" {
		t.Errorf("X-Custom header = %q, want %q", w.Header().Get("X-Custom"), "value")
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestJSONResponseBuilder_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()

	NewJSONResponse().Body(math.NaN()).Write(w)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "failed to encode response") {
		t.Errorf("Body = %q", w.Body.String())
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name     string
		builder  *JSONResponseBuilder
		wantCode int
	}{
		{"bad request", BadRequestError("Invalid input"), http.StatusBadRequest},
		{"unprocessable", UnprocessableEntityError("Invalid input"), http.StatusUnprocessableEntity},
		{"internal", InternalServerError("Invalid input"), http.StatusInternalServerError},
		{"not found", NotFoundError("Invalid input"), http.StatusNotFound},
		{"method", MethodNotAllowedError("Invalid input"), http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.builder.Write(w)

			if w.Code != tt.wantCode {
				t.Errorf("Status code = %d, want %d", w.Code, tt.wantCode)
			}
			if w.Body.String() != "{\"error\":\"Invalid input\"}\n" {
				t.Errorf("Body = %q", w.Body.String())
			}
		})
	}
}
