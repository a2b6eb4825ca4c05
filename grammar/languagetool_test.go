package grammar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLanguageToolCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v2/check" {
			t.Errorf("expected path /v2/check, got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("language"); got != "es" {
			t.Errorf("expected language es, got %q", got)
		}
		if got := r.PostForm.Get("text"); got != "El documento contiene herores." {
			t.Errorf("unexpected text %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches":[
			{"message":"Possible spelling mistake found.","offset":23,"length":7,"rule":{"id":"MORFOLOGIK_RULE_ES"}},
			{"message":"Consider rephrasing.","offset":0,"length":2,"rule":{"id":"STYLE"}}
		]}`))
	}))
	defer server.Close()

	lt := NewLanguageTool(server.URL, "es")
	defer lt.Close()

	issues, err := lt.Check(context.Background(), "El documento contiene herores.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0] != "Possible spelling mistake found." {
		t.Errorf("unexpected first issue %q", issues[0])
	}
}

func TestLanguageToolCheckNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[]}`))
	}))
	defer server.Close()

	lt := NewLanguageTool(server.URL, "es")
	defer lt.Close()

	issues, err := lt.Check(context.Background(), "Texto perfectamente correcto.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestLanguageToolCheckServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	lt := NewLanguageTool(server.URL, "es")
	defer lt.Close()

	if _, err := lt.Check(context.Background(), "algún texto"); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestLanguageToolCheckMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches": not json`))
	}))
	defer server.Close()

	lt := NewLanguageTool(server.URL, "es")
	defer lt.Close()

	if _, err := lt.Check(context.Background(), "algún texto"); err == nil {
		t.Error("expected error on malformed response body")
	}
}

func TestNewLanguageToolDefaults(t *testing.T) {
	lt := NewLanguageTool("", "es")
	if lt.endpoint != DefaultEndpoint {
		t.Errorf("expected default endpoint, got %s", lt.endpoint)
	}

	trimmed := NewLanguageTool("http://localhost:8010/", "es")
	if trimmed.endpoint != "http://localhost:8010" {
		t.Errorf("expected trailing slash trimmed, got %s", trimmed.endpoint)
	}
}

func TestWithRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		perMinute int
		wantNil   bool
		wantBurst int
	}{
		{"disabled", 0, true, 0},
		{"low rate gets minimum burst", 2, false, 1},
		{"moderate rate", 12, false, 3},
		{"high rate capped at five", 60, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt := NewLanguageTool("", "es", WithRateLimit(tt.perMinute))
			if tt.wantNil {
				if lt.limiter != nil {
					t.Error("expected no limiter")
				}
				return
			}
			if lt.limiter == nil {
				t.Fatal("expected a limiter")
			}
			if got := lt.limiter.Burst(); got != tt.wantBurst {
				t.Errorf("expected burst %d, got %d", tt.wantBurst, got)
			}
		})
	}
}
