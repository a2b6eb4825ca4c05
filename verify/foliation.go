package verify

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/foliocheck/foliocheck/extract"
)

// foliationPatterns are tried in order against each page's text; the first
// match wins. Labeled folio/page markers take precedence over the bare
// numeric-line fallback.
//
// The bare-number fallback is a known heuristic limitation: a page containing
// an unrelated number alone on a line (an amount, a year) can be misread as a
// folio stamp. The labeled patterns are tried first to keep that window small.
var foliationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)folio\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?im)foja\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?im)p[áa]gina\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?im)page\s*:?\s*(\d+)`),
	regexp.MustCompile(`(?m)^\s*(\d+)\s*$`),
}

// foliationObserveLimit is the fraction of mismatched pages tolerated before
// the check escalates from OBSERVED to REJECTED.
const foliationObserveLimit = 0.10

// foliationDetailCap bounds how many mismatches get their own detail line.
const foliationDetailCap = 10

// FoliationCheck verifies that the folio number declared on each page matches
// the page's actual position in the document.
type FoliationCheck struct{}

// NewFoliationCheck creates the foliation check.
func NewFoliationCheck(cfg Config) *FoliationCheck {
	return &FoliationCheck{}
}

// Name returns the check identifier.
func (c *FoliationCheck) Name() string { return "foliation" }

type foliationMismatch struct {
	page     int
	expected int
	found    int // 0 when no folio marker was found on the page
}

// Run extracts the declared folio of every page and compares it against the
// page's 1-based position. A page with no recognizable folio marker counts as
// mismatched.
func (c *FoliationCheck) Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error) {
	var mismatches []foliationMismatch
	for _, page := range pages {
		found, ok := declaredFolio(page.Text)
		if !ok || found != page.Number {
			mismatches = append(mismatches, foliationMismatch{
				page:     page.Number,
				expected: page.Number,
				found:    found,
			})
		}
	}

	affected := make([]int, 0, len(mismatches))
	for _, m := range mismatches {
		affected = append(affected, m.page)
	}

	result := &CheckResult{
		Name:            c.Name(),
		ComplianceRatio: complianceRatio(len(pages), len(mismatches)),
		AffectedPages:   affected,
	}

	switch {
	case len(mismatches) == 0:
		result.Status = StatusApproved
		result.Messages = []string{"foliation is sequential and correct"}
		return result, nil
	case float64(len(mismatches)) <= float64(len(pages))*foliationObserveLimit:
		result.Status = StatusObserved
		result.Messages = []string{fmt.Sprintf("detected %d foliation inconsistency(ies)", len(mismatches))}
	default:
		result.Status = StatusRejected
		result.Messages = []string{fmt.Sprintf("incorrect foliation on %d page(s)", len(mismatches))}
	}

	for i, m := range mismatches {
		if i == foliationDetailCap {
			result.Messages = append(result.Messages,
				fmt.Sprintf("... and %d more inconsistency(ies)", len(mismatches)-foliationDetailCap))
			break
		}
		found := "none"
		if m.found > 0 {
			found = strconv.Itoa(m.found)
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("page %d: expected folio %d, found %s", m.page, m.expected, found))
	}

	return result, nil
}

// declaredFolio returns the folio number declared in the page text, if any.
func declaredFolio(text string) (int, bool) {
	for _, pattern := range foliationPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}
