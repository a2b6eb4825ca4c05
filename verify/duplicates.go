package verify

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/foliocheck/foliocheck/extract"
)

// duplicateDetailCap bounds how many duplicate pairs get their own detail line.
const duplicateDetailCap = 10

// DuplicatePageCheck detects pages whose extracted text is identical to an
// earlier page, using a 128-bit content digest per page. Duplicated folios are
// a hard failure: any hit rejects the document.
type DuplicatePageCheck struct {
	normalize bool
}

// NewDuplicatePageCheck creates the duplicate-page check from cfg.
func NewDuplicatePageCheck(cfg Config) *DuplicatePageCheck {
	return &DuplicatePageCheck{normalize: cfg.DuplicateNormalizeWhitespace}
}

// Name returns the check identifier.
func (c *DuplicatePageCheck) Name() string { return "duplicate_pages" }

type duplicatePair struct {
	duplicate int
	original  int
}

// Run hashes pages in order and flags every page whose digest matches an
// earlier page. The first occurrence is never flagged.
func (c *DuplicatePageCheck) Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error) {
	seen := make(map[[md5.Size]byte]int, len(pages))
	var duplicates []duplicatePair

	for _, page := range pages {
		digest := c.digest(page.Text)
		if original, ok := seen[digest]; ok {
			duplicates = append(duplicates, duplicatePair{duplicate: page.Number, original: original})
			continue
		}
		seen[digest] = page.Number
	}

	affected := make([]int, 0, len(duplicates))
	for _, d := range duplicates {
		affected = append(affected, d.duplicate)
	}

	result := &CheckResult{
		Name:            c.Name(),
		ComplianceRatio: complianceRatio(len(pages), len(duplicates)),
		AffectedPages:   affected,
	}

	if len(duplicates) == 0 {
		result.Status = StatusApproved
		result.Messages = []string{"no duplicate pages detected"}
		return result, nil
	}

	result.Status = StatusRejected
	result.Messages = []string{fmt.Sprintf("alert: detected %d duplicate page(s)", len(duplicates))}
	for i, d := range duplicates {
		if i == duplicateDetailCap {
			result.Messages = append(result.Messages,
				fmt.Sprintf("... and %d more duplicate(s)", len(duplicates)-duplicateDetailCap))
			break
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("page %d is identical to page %d", d.duplicate, d.original))
	}

	return result, nil
}

// digest hashes a page's text. With whitespace normalization enabled, the
// text is NFKC-normalized and runs of whitespace collapse to a single space
// first, so visually identical pages with incidental extraction differences
// still collide.
func (c *DuplicatePageCheck) digest(text string) [md5.Size]byte {
	if c.normalize {
		text = norm.NFKC.String(text)
		text = strings.Join(strings.Fields(text), " ")
	}
	return md5.Sum([]byte(text))
}
