package verify

import (
	"context"
	"fmt"
	"unicode"

	"github.com/foliocheck/foliocheck/extract"
)

// legibilityObserveLimit is the fraction of illegible pages tolerated before
// the check escalates from OBSERVED to REJECTED.
const legibilityObserveLimit = 0.05

// legibilityDetailCap bounds how many flagged pages get their own detail line.
const legibilityDetailCap = 10

// LegibilityCheck flags pages where too small a share of the characters is
// alphanumeric or whitespace, which on scanned documents usually means OCR
// noise or a degraded source page.
type LegibilityCheck struct {
	threshold float64
}

// NewLegibilityCheck creates the legibility check from cfg.
func NewLegibilityCheck(cfg Config) *LegibilityCheck {
	return &LegibilityCheck{threshold: cfg.IllegibilityRatio}
}

// Name returns the check identifier.
func (c *LegibilityCheck) Name() string { return "legibility" }

type illegiblePage struct {
	page    int
	ratio   float64 // fraction of legible characters, 0 on extraction failure
	failure error
}

// Run computes the legible-character ratio of every non-empty page and flags
// pages below the threshold. Pages whose extraction failed are flagged with
// ratio zero and the extraction error as the note.
func (c *LegibilityCheck) Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error) {
	var flagged []illegiblePage
	for _, page := range pages {
		if page.Err != nil {
			flagged = append(flagged, illegiblePage{page: page.Number, failure: page.Err})
			continue
		}
		if len(page.Text) == 0 {
			continue
		}
		ratio := LegibleRatio(page.Text)
		if ratio < c.threshold {
			flagged = append(flagged, illegiblePage{page: page.Number, ratio: ratio})
		}
	}

	affected := make([]int, 0, len(flagged))
	for _, f := range flagged {
		affected = append(affected, f.page)
	}

	result := &CheckResult{
		Name:            c.Name(),
		ComplianceRatio: complianceRatio(len(pages), len(flagged)),
		AffectedPages:   affected,
	}

	requiredPct := c.threshold * 100

	switch {
	case len(flagged) == 0:
		result.Status = StatusApproved
		result.Messages = []string{
			fmt.Sprintf("all pages meet the legibility threshold (%.0f%%)", requiredPct),
		}
		return result, nil
	case float64(len(flagged)) <= float64(len(pages))*legibilityObserveLimit:
		result.Status = StatusObserved
		result.Messages = []string{fmt.Sprintf("detected %d page(s) with low legibility", len(flagged))}
	default:
		result.Status = StatusRejected
		result.Messages = []string{fmt.Sprintf("significant number of illegible pages: %d", len(flagged))}
	}

	for i, f := range flagged {
		if i == legibilityDetailCap {
			result.Messages = append(result.Messages,
				fmt.Sprintf("... and %d more page(s)", len(flagged)-legibilityDetailCap))
			break
		}
		if f.failure != nil {
			result.Messages = append(result.Messages,
				fmt.Sprintf("page %d: text extraction failed (%v)", f.page, f.failure))
			continue
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("page %d: %.2f%% legible (minimum required: %.0f%%)", f.page, f.ratio*100, requiredPct))
	}

	return result, nil
}

// LegibleRatio returns the fraction of characters in text that are letters,
// digits or whitespace. Returns 0 for empty text.
func LegibleRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}

	legible := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			legible++
		}
	}

	return float64(legible) / float64(total)
}
