package verify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable thresholds of the verification pipeline.
// Zero values are replaced by the documented defaults when loaded through
// LoadConfig; construct via DefaultConfig when configuring programmatically.
type Config struct {
	// BlankCharMinimum is the trimmed character count below which a page is
	// considered blank. Default 10.
	BlankCharMinimum int `yaml:"blank_char_minimum" json:"blank_char_minimum"`

	// IllegibilityRatio is the minimum fraction of alphanumeric/whitespace
	// characters a page must contain to count as legible. Default 0.60.
	IllegibilityRatio float64 `yaml:"illegibility_ratio" json:"illegibility_ratio"`

	// SimilarityRatio is the matching-block similarity at or above which a
	// pair of pages is reported as internally duplicated text. Default 0.85.
	SimilarityRatio float64 `yaml:"similarity_ratio" json:"similarity_ratio"`

	// SimilarityMinChars excludes pages with this many trimmed characters or
	// fewer from the pairwise similarity scan; very short pages are
	// statistically unreliable. Default 100.
	SimilarityMinChars int `yaml:"similarity_min_chars" json:"similarity_min_chars"`

	// DuplicateNormalizeWhitespace hashes a whitespace- and Unicode-normalized
	// form of each page for duplicate detection instead of the raw extracted
	// text. Off by default: raw hashing is byte-exact but sensitive to
	// incidental extraction differences between visually identical pages.
	DuplicateNormalizeWhitespace bool `yaml:"duplicate_normalize_whitespace" json:"duplicate_normalize_whitespace"`

	// GrammarCheckEnabled enables the external spelling/grammar check.
	// Default true.
	GrammarCheckEnabled bool `yaml:"grammar_check_enabled" json:"grammar_check_enabled"`

	// GrammarPageLimit caps how many pages are sent to the grammar delegate,
	// keeping external API cost bounded. Default 50.
	GrammarPageLimit int `yaml:"grammar_page_limit" json:"grammar_page_limit"`

	// GrammarEndpoint is the base URL of the LanguageTool-compatible API.
	// Empty means the delegate's default endpoint.
	GrammarEndpoint string `yaml:"grammar_endpoint" json:"grammar_endpoint"`

	// LanguageCode is the language submitted to the grammar delegate.
	// Default "es".
	LanguageCode string `yaml:"language_code" json:"language_code"`

	// TimestampFormat is the Go layout used for report timestamps.
	// Default "2006-01-02 15:04:05".
	TimestampFormat string `yaml:"timestamp_format" json:"timestamp_format"`
}

// DefaultConfig returns the default verification configuration.
func DefaultConfig() Config {
	return Config{
		BlankCharMinimum:    10,
		IllegibilityRatio:   0.60,
		SimilarityRatio:     0.85,
		SimilarityMinChars:  100,
		GrammarCheckEnabled: true,
		GrammarPageLimit:    50,
		LanguageCode:        "es",
		TimestampFormat:     "2006-01-02 15:04:05",
	}
}

// LoadConfig loads configuration from a YAML file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes loads configuration from YAML bytes on top of the
// defaults.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.BlankCharMinimum <= 0 {
		config.BlankCharMinimum = 10
	}
	if config.IllegibilityRatio <= 0 || config.IllegibilityRatio > 1 {
		config.IllegibilityRatio = 0.60
	}
	if config.SimilarityRatio <= 0 || config.SimilarityRatio > 1 {
		config.SimilarityRatio = 0.85
	}
	if config.SimilarityMinChars <= 0 {
		config.SimilarityMinChars = 100
	}
	if config.GrammarPageLimit <= 0 {
		config.GrammarPageLimit = 50
	}
	if config.LanguageCode == "" {
		config.LanguageCode = "es"
	}
	if config.TimestampFormat == "" {
		config.TimestampFormat = "2006-01-02 15:04:05"
	}

	return &config, nil
}
