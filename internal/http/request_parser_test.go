package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     string
	}{
		{"valid", `{"name":"ok"}`, "application/json", ""},
		{"charset", `{"name":"ok"}`, "application/json; charset=utf-8", ""},
		{"no content type", `{"name":"ok"}`, "", ""},
		{"empty", ``, "application/json", "request body is empty"},
		{"malformed", `{"name":`, "application/json", "invalid JSON body"},
		{"unknown field", `{"name":"ok","x":1}`, "application/json", "invalid JSON body"},
		{"trailing", `{"name":"ok"}{"name":"again"}`, "application/json", "single JSON object"},
		{"form", `name=ok`, "application/x-www-form-urlencoded", "unsupported content type"},
		{"too large", `{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}`, "application/json", "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			var got payload
			err := DecodeJSON(httptest.NewRecorder(), req, &got)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.Name != "ok" {
					t.Errorf("Name = %q", got.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Rent  ", "Rent"},
		{"Client\x00B", "ClientB"},
		{"Line\tTab", "Line\tTab"},
		{"\x07Bell", "Bell"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
