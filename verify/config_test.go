package verify

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromBytes(t *testing.T) {
	t.Run("empty input keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfigFromBytes(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *cfg != DefaultConfig() {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})

	t.Run("partial override keeps unrelated defaults", func(t *testing.T) {
		cfg, err := LoadConfigFromBytes([]byte("blank_char_minimum: 25\nlanguage_code: en\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BlankCharMinimum != 25 {
			t.Errorf("expected blank_char_minimum 25, got %d", cfg.BlankCharMinimum)
		}
		if cfg.LanguageCode != "en" {
			t.Errorf("expected language_code en, got %s", cfg.LanguageCode)
		}
		if cfg.SimilarityRatio != 0.85 {
			t.Errorf("expected default similarity_ratio, got %v", cfg.SimilarityRatio)
		}
		if !cfg.GrammarCheckEnabled {
			t.Error("expected grammar check to stay enabled by default")
		}
	})

	t.Run("grammar check can be disabled", func(t *testing.T) {
		cfg, err := LoadConfigFromBytes([]byte("grammar_check_enabled: false\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.GrammarCheckEnabled {
			t.Error("expected grammar check disabled")
		}
	})

	t.Run("out-of-range values fall back to defaults", func(t *testing.T) {
		cfg, err := LoadConfigFromBytes([]byte("illegibility_ratio: 1.7\nsimilarity_ratio: -3\ngrammar_page_limit: 0\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.IllegibilityRatio != 0.60 {
			t.Errorf("expected illegibility_ratio fallback 0.60, got %v", cfg.IllegibilityRatio)
		}
		if cfg.SimilarityRatio != 0.85 {
			t.Errorf("expected similarity_ratio fallback 0.85, got %v", cfg.SimilarityRatio)
		}
		if cfg.GrammarPageLimit != 50 {
			t.Errorf("expected grammar_page_limit fallback 50, got %d", cfg.GrammarPageLimit)
		}
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		if _, err := LoadConfigFromBytes([]byte("blank_char_minimum: [not a number")); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foliocheck.yaml")
	if err := os.WriteFile(path, []byte("similarity_min_chars: 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SimilarityMinChars != 200 {
		t.Errorf("expected similarity_min_chars 200, got %d", cfg.SimilarityMinChars)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
