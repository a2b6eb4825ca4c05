// Package report assembles, serializes and renders verification reports.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/foliocheck/foliocheck/verify"
)

// Report is the final, immutable outcome of one verification run.
type Report struct {
	// RunID uniquely identifies this verification run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Document is the analyzed document's identifier (its file name).
	Document string `json:"document" yaml:"document"`

	// GeneratedAt is the report generation time, formatted with the
	// configured timestamp layout.
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// TotalPages is the document's page count. Zero on load failure.
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// Summary aggregates the check results and carries the global status.
	Summary verify.Summary `json:"summary" yaml:"summary"`

	// Results are the ordered check results. Empty on load failure.
	Results []verify.CheckResult `json:"results" yaml:"results"`

	// Error describes a fatal load failure. When set, no checks ran.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Build assembles a report from completed check results.
func Build(document string, totalPages int, results []verify.CheckResult, now time.Time, timestampFormat string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Document:    document,
		GeneratedAt: now.Format(timestampFormat),
		TotalPages:  totalPages,
		Summary:     verify.Summarize(results),
		Results:     results,
	}
}

// BuildLoadError assembles the minimal error-only report produced when the
// document cannot be loaded at all.
func BuildLoadError(document string, loadErr error, now time.Time, timestampFormat string) *Report {
	return &Report{
		RunID:       uuid.NewString(),
		Document:    document,
		GeneratedAt: now.Format(timestampFormat),
		Summary:     verify.Summary{GlobalStatus: verify.NotAdmissible},
		Error:       fmt.Sprintf("could not process document: %v", loadErr),
	}
}

// ToJSON converts the report to JSON.
func (r *Report) ToJSON(pretty bool) ([]byte, error) {
	if pretty {
		return sonic.MarshalIndent(r, "", "  ")
	}
	return sonic.Marshal(r)
}

// ToYAML converts the report to YAML.
func (r *Report) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// Print prints a human-readable run summary to stdout.
func (r *Report) Print() {
	r.PrintTo(os.Stdout)
}

// PrintTo prints a human-readable run summary to w.
func (r *Report) PrintTo(w io.Writer) {
	fmt.Fprintf(w, "Admissibility Verification Report\n")
	fmt.Fprintf(w, "=================================\n\n")
	fmt.Fprintf(w, "Document: %s\n", r.Document)
	fmt.Fprintf(w, "Generated: %s\n", r.GeneratedAt)

	if r.Error != "" {
		fmt.Fprintf(w, "\nERROR: %s\n", r.Error)
		return
	}

	fmt.Fprintf(w, "Total pages: %d\n\n", r.TotalPages)
	fmt.Fprintf(w, "Global status: %s\n\n", r.Summary.GlobalStatus)

	fmt.Fprintf(w, "Checks\n")
	fmt.Fprintf(w, "------\n")
	for _, result := range r.Results {
		fmt.Fprintf(w, "%-20s %-12s compliance %6.2f%%  affected pages: %d\n",
			result.Name, result.Status, result.ComplianceRatio, len(result.AffectedPages))
	}

	fmt.Fprintf(w, "\nApproved: %d  Observed: %d  Rejected: %d",
		r.Summary.Approved, r.Summary.Observed, r.Summary.Rejected)
	if r.Summary.Unprocessed > 0 {
		fmt.Fprintf(w, "  Unprocessed: %d", r.Summary.Unprocessed)
	}
	fmt.Fprintf(w, "\n")
}

// SaveToFile saves the report to a file in the specified format: json, yaml,
// markdown or html.
func (r *Report) SaveToFile(path, format string, pretty bool) error {
	var data []byte
	var err error

	switch format {
	case "json":
		data, err = r.ToJSON(pretty)
	case "yaml", "yml":
		data, err = r.ToYAML()
	case "markdown", "md":
		data = []byte(r.ToMarkdown())
	case "html":
		data, err = r.ToHTML()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("failed to convert report to %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to file: %w", err)
	}

	return nil
}
