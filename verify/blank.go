package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/foliocheck/foliocheck/extract"
)

// BlankPageCheck flags pages whose trimmed text falls below a minimum
// character count. Blank pages alone never reject a document; they are
// reported as observations.
type BlankPageCheck struct {
	minChars int
}

// NewBlankPageCheck creates the blank-page check from cfg.
func NewBlankPageCheck(cfg Config) *BlankPageCheck {
	return &BlankPageCheck{minChars: cfg.BlankCharMinimum}
}

// Name returns the check identifier.
func (c *BlankPageCheck) Name() string { return "blank_pages" }

// Run scans every page and flags those with fewer than the configured number
// of trimmed characters. Pages whose extraction failed have empty text and
// are flagged as blank here; the legibility check reports the failure itself.
func (c *BlankPageCheck) Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error) {
	var blank []int
	for _, page := range pages {
		trimmed := strings.TrimSpace(page.Text)
		if len(trimmed) < c.minChars {
			blank = append(blank, page.Number)
		}
	}

	result := &CheckResult{
		Name:            c.Name(),
		ComplianceRatio: complianceRatio(len(pages), len(blank)),
		AffectedPages:   blank,
	}

	if len(blank) == 0 {
		result.Status = StatusApproved
		result.Messages = []string{"no blank pages detected"}
		return result, nil
	}

	result.Status = StatusObserved
	result.Messages = []string{
		fmt.Sprintf("detected %d blank page(s)", len(blank)),
		fmt.Sprintf("affected pages: %s", joinPages(blank)),
	}
	return result, nil
}

// joinPages renders page numbers as a comma-separated list.
func joinPages(pages []int) string {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", p)
	}
	return sb.String()
}
