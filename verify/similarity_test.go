package verify

import (
	"context"
	"strings"
	"testing"
)

func TestMatchRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"both empty", "", "", 1},
		{"identical", "abcdef", "abcdef", 1},
		{"disjoint", "aaaa", "bbbb", 0},
		{"one empty", "abc", "", 0},
		{"partial overlap", "abcd", "bcde", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("MatchRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMatchRatioSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"the quick brown fox", "the quick brown dog"},
		{"contract between the parties", "agreement between the parties"},
		{"aXbXcX", "XaXbXc"},
		{"short", "a considerably longer piece of text"},
	}

	for _, pair := range pairs {
		forward := MatchRatio(pair[0], pair[1])
		backward := MatchRatio(pair[1], pair[0])
		if forward != backward {
			t.Errorf("MatchRatio(%q, %q) = %v but reversed = %v",
				pair[0], pair[1], forward, backward)
		}
	}
}

func TestSimilarityCheck(t *testing.T) {
	// Long enough to pass the minimum-length cutoff.
	base := strings.Repeat("This clause describes the obligations of the first party in detail. ", 3)
	other := strings.Repeat("Completely different subject matter about payment schedules and dates. ", 3)

	t.Run("distinct pages", func(t *testing.T) {
		check := NewSimilarityCheck(DefaultConfig())

		result, err := check.Run(context.Background(), textPages(base, other))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != StatusApproved {
			t.Errorf("expected APPROVED, got %s", result.Status)
		}
		if result.ComplianceRatio != 100 {
			t.Errorf("expected compliance 100, got %.2f", result.ComplianceRatio)
		}
	})

	t.Run("identical long pages are observed, never rejected", func(t *testing.T) {
		check := NewSimilarityCheck(DefaultConfig())

		result, err := check.Run(context.Background(), textPages(base, base))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != StatusObserved {
			t.Errorf("expected OBSERVED, got %s", result.Status)
		}
		assertPages(t, result.AffectedPages, []int{1, 2})
		if result.ComplianceRatio != 50 {
			t.Errorf("expected compliance 50, got %.2f", result.ComplianceRatio)
		}
	})

	t.Run("short pages are excluded from the scan", func(t *testing.T) {
		check := NewSimilarityCheck(DefaultConfig())

		// Identical but below the 100-character cutoff.
		result, err := check.Run(context.Background(), textPages("short repeated text", "short repeated text"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != StatusApproved {
			t.Errorf("expected APPROVED for short pages, got %s", result.Status)
		}
	})

	t.Run("near-duplicate above threshold", func(t *testing.T) {
		variant := base + "One extra closing sentence."

		check := NewSimilarityCheck(DefaultConfig())
		result, err := check.Run(context.Background(), textPages(base, variant))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Status != StatusObserved {
			t.Errorf("expected OBSERVED for near-duplicate pages, got %s", result.Status)
		}
	})
}
