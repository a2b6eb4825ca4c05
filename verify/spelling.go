package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/foliocheck/foliocheck/extract"
)

// spellingDetailCap bounds how many flagged pages get their own detail line.
const spellingDetailCap = 10

// spellingExampleCap bounds how many example issues are kept per page.
const spellingExampleCap = 3

// spellingExampleLen truncates example issue messages.
const spellingExampleLen = 80

// spellingObserveFactor: up to this many issues per page on average is an
// observation; beyond it the document is rejected.
const spellingObserveFactor = 5

// GrammarChecker is the external spelling/grammar delegate. Implementations
// return one message per detected issue.
type GrammarChecker interface {
	// Check analyzes text and returns the detected issue messages.
	Check(ctx context.Context, text string) ([]string, error)

	// Close releases any resources held by the delegate.
	Close() error
}

// SpellingCheck delegates per-page text to an external grammar checker. The
// number of pages sent is capped to bound external API cost. This is the only
// check allowed to degrade to UNPROCESSED: if the delegate is missing or
// fails entirely, the rest of the pipeline is unaffected.
type SpellingCheck struct {
	checker   GrammarChecker
	pageLimit int
}

// NewSpellingCheck creates the spelling check from cfg using the given
// delegate. A nil delegate yields an UNPROCESSED result at run time.
func NewSpellingCheck(cfg Config, checker GrammarChecker) *SpellingCheck {
	return &SpellingCheck{checker: checker, pageLimit: cfg.GrammarPageLimit}
}

// Name returns the check identifier.
func (c *SpellingCheck) Name() string { return "spelling" }

type spellingPage struct {
	page     int
	issues   int
	examples []string
}

// Run sends each non-empty page (up to the page cap) to the delegate and
// totals the flagged issues across the document.
func (c *SpellingCheck) Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error) {
	if c.checker == nil {
		return &CheckResult{
			Name:     c.Name(),
			Status:   StatusUnprocessed,
			Messages: []string{"grammar checker unavailable; check skipped"},
		}, nil
	}

	limit := min(len(pages), c.pageLimit)

	var flagged []spellingPage
	totalIssues := 0
	attempted := 0
	failed := 0
	var lastErr error

	for _, page := range pages[:limit] {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		attempted++

		issues, err := c.checker.Check(ctx, page.Text)
		if err != nil {
			failed++
			lastErr = err
			continue
		}
		if len(issues) == 0 {
			continue
		}

		examples := make([]string, 0, spellingExampleCap)
		for _, msg := range issues[:min(len(issues), spellingExampleCap)] {
			examples = append(examples, truncate(msg, spellingExampleLen))
		}
		flagged = append(flagged, spellingPage{page: page.Number, issues: len(issues), examples: examples})
		totalIssues += len(issues)
	}

	// Every delegate call failing means the capability is effectively down.
	if attempted > 0 && failed == attempted {
		return &CheckResult{
			Name:     c.Name(),
			Status:   StatusUnprocessed,
			Messages: []string{fmt.Sprintf("could not complete spelling verification: %v", lastErr)},
		}, nil
	}

	affected := make([]int, 0, len(flagged))
	for _, f := range flagged {
		affected = append(affected, f.page)
	}

	compliance := 100 - float64(totalIssues)/float64(max(len(pages), 1))
	if compliance < 0 {
		compliance = 0
	}

	result := &CheckResult{
		Name:            c.Name(),
		ComplianceRatio: compliance,
		AffectedPages:   affected,
	}

	switch {
	case totalIssues == 0:
		result.Status = StatusApproved
		result.Messages = []string{"no significant spelling issues detected"}
		return result, nil
	case totalIssues <= len(pages)*spellingObserveFactor:
		result.Status = StatusObserved
		result.Messages = []string{fmt.Sprintf("detected %d spelling issue(s) in the document", totalIssues)}
	default:
		result.Status = StatusRejected
		result.Messages = []string{fmt.Sprintf("high number of spelling issues: %d", totalIssues)}
	}

	for i, f := range flagged {
		if i == spellingDetailCap {
			result.Messages = append(result.Messages,
				fmt.Sprintf("... and %d more page(s)", len(flagged)-spellingDetailCap))
			break
		}
		result.Messages = append(result.Messages, fmt.Sprintf("page %d: %d issue(s)", f.page, f.issues))
		for _, example := range f.examples {
			result.Messages = append(result.Messages, fmt.Sprintf("  e.g. %s", example))
		}
	}

	return result, nil
}

// truncate shortens s to at most n bytes on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	out := make([]rune, 0, n)
	size := 0
	for _, r := range runes {
		size += len(string(r))
		if size > n {
			break
		}
		out = append(out, r)
	}
	return string(out)
}
