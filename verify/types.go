// Package verify implements the document admissibility checks and their
// aggregation. Each check is a stateless pass over the full ordered sequence
// of extracted page texts; the runner composes the individual results into a
// single admissibility decision.
package verify

import (
	"context"

	"github.com/foliocheck/foliocheck/extract"
)

// Status is the outcome of a single check.
type Status string

const (
	// StatusApproved means the check found nothing to flag.
	StatusApproved Status = "APPROVED"

	// StatusObserved means the check found issues below its rejection
	// threshold; the document remains admissible but needs attention.
	StatusObserved Status = "OBSERVED"

	// StatusRejected means the check found issues severe enough to make the
	// document inadmissible.
	StatusRejected Status = "REJECTED"

	// StatusUnprocessed means the check could not run to completion. It is
	// excluded from the admissibility decision.
	StatusUnprocessed Status = "UNPROCESSED"
)

// GlobalStatus is the document-level admissibility decision derived from all
// check results.
type GlobalStatus string

const (
	Admissible                 GlobalStatus = "ADMISSIBLE"
	AdmissibleWithObservations GlobalStatus = "ADMISSIBLE_WITH_OBSERVATIONS"
	NotAdmissible              GlobalStatus = "NOT_ADMISSIBLE"
)

// CheckResult is the immutable outcome of one check over one document.
type CheckResult struct {
	// Name identifies the check that produced this result.
	Name string `json:"name" yaml:"name"`

	// Status is the check outcome.
	Status Status `json:"status" yaml:"status"`

	// Messages are human-readable detail lines, most significant first.
	Messages []string `json:"messages" yaml:"messages"`

	// ComplianceRatio is the percentage of pages not flagged, in [0,100].
	ComplianceRatio float64 `json:"compliance_ratio" yaml:"compliance_ratio"`

	// AffectedPages lists the flagged page numbers in ascending order.
	// Always a subset of the document's page numbers.
	AffectedPages []int `json:"affected_pages" yaml:"affected_pages"`
}

// Check is a single admissibility verification. Implementations must be
// stateless: Run receives a read-only view of the extracted pages and returns
// a freshly constructed result.
type Check interface {
	// Name returns the identifier used in reports.
	Name() string

	// Run executes the check over the full page sequence.
	Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error)
}

// complianceRatio scales the fraction of unflagged pages to [0,100].
// An empty document complies trivially.
func complianceRatio(total, flagged int) float64 {
	if total == 0 {
		return 100
	}
	return float64(total-flagged) / float64(total) * 100
}
