package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/foliocheck/foliocheck/verify"
)

// affectedPageListCap bounds the rendered affected-page list per check.
const affectedPageListCap = 20

// statusColors maps statuses to the hex colors used in the HTML rendering.
var statusColors = map[string]string{
	string(verify.StatusApproved):             "#27ae60",
	string(verify.StatusObserved):             "#f39c12",
	string(verify.StatusRejected):             "#e74c3c",
	string(verify.StatusUnprocessed):          "#95a5a6",
	string(verify.Admissible):                 "#27ae60",
	string(verify.AdmissibleWithObservations): "#f39c12",
	string(verify.NotAdmissible):              "#e74c3c",
}

// statusColor returns the display color for a check or global status.
func statusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return "#7f8c8d"
}

// ToMarkdown renders the full formatted report: header, executive summary,
// one detailed section per check, and a conclusions section with
// recommendations derived from the results.
func (r *Report) ToMarkdown() string {
	var sb strings.Builder

	sb.WriteString("# Document Admissibility Verification Report\n\n")

	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Document analyzed | %s |\n", r.Document)
	fmt.Fprintf(&sb, "| Verification date | %s |\n", r.GeneratedAt)
	fmt.Fprintf(&sb, "| Total pages | %d |\n", r.TotalPages)
	fmt.Fprintf(&sb, "| Global status | **%s** |\n\n", r.Summary.GlobalStatus)

	if r.Error != "" {
		sb.WriteString("## Error\n\n")
		fmt.Fprintf(&sb, "%s\n\n", r.Error)
		sb.WriteString("No checks were executed against this document.\n")
		return sb.String()
	}

	r.writeExecutiveSummary(&sb)
	r.writeDetailedResults(&sb)
	r.writeConclusions(&sb)

	return sb.String()
}

func (r *Report) writeExecutiveSummary(sb *strings.Builder) {
	sb.WriteString("## Executive Summary\n\n")
	sb.WriteString("| Concept | Count | Percentage |\n")
	sb.WriteString("|---------|-------|------------|\n")

	total := r.Summary.TotalChecks
	pct := func(n int) string {
		if total == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
	}

	fmt.Fprintf(sb, "| Checks executed | %d | 100%% |\n", total)
	fmt.Fprintf(sb, "| Approved | %d | %s |\n", r.Summary.Approved, pct(r.Summary.Approved))
	fmt.Fprintf(sb, "| Observed | %d | %s |\n", r.Summary.Observed, pct(r.Summary.Observed))
	fmt.Fprintf(sb, "| Rejected | %d | %s |\n", r.Summary.Rejected, pct(r.Summary.Rejected))
	if r.Summary.Unprocessed > 0 {
		fmt.Fprintf(sb, "| Unprocessed | %d | %s |\n", r.Summary.Unprocessed, pct(r.Summary.Unprocessed))
	}
	fmt.Fprintf(sb, "\n**GLOBAL STATUS: %s**\n\n", r.Summary.GlobalStatus)
}

func (r *Report) writeDetailedResults(sb *strings.Builder) {
	sb.WriteString("## Detailed Results\n\n")

	for _, result := range r.Results {
		fmt.Fprintf(sb, "### %s\n\n", result.Name)
		fmt.Fprintf(sb, "- **Status**: %s\n", result.Status)
		fmt.Fprintf(sb, "- **Compliance**: %.2f%%\n", result.ComplianceRatio)
		fmt.Fprintf(sb, "- **Affected pages**: %d\n\n", len(result.AffectedPages))

		if len(result.Messages) > 0 {
			sb.WriteString("**Details:**\n\n")
			for _, msg := range result.Messages {
				fmt.Fprintf(sb, "- %s\n", msg)
			}
			sb.WriteString("\n")
		}

		if n := len(result.AffectedPages); n > 0 {
			if n <= affectedPageListCap {
				fmt.Fprintf(sb, "**Pages**: %s\n\n", joinInts(result.AffectedPages))
			} else {
				fmt.Fprintf(sb, "**Pages (first %d)**: %s ... and %d more\n\n",
					affectedPageListCap, joinInts(result.AffectedPages[:affectedPageListCap]), n-affectedPageListCap)
			}
		}
	}
}

func (r *Report) writeConclusions(sb *strings.Builder) {
	sb.WriteString("## Conclusions and Recommendations\n\n")

	var conclusion string
	switch r.Summary.GlobalStatus {
	case verify.Admissible:
		conclusion = "The document passed every admissibility check and is in " +
			"optimal condition for processing and archival."
	case verify.AdmissibleWithObservations:
		conclusion = "The document presents observations that do not prevent its " +
			"admissibility but require attention and correction to guarantee " +
			"documentary quality and consistency."
	default:
		conclusion = "The document does NOT meet the minimum admissibility " +
			"requirements. The identified deficiencies must be corrected before " +
			"the document can be accepted."
	}
	fmt.Fprintf(sb, "**Conclusion:** %s\n\n", conclusion)

	sb.WriteString("**Recommendations:**\n\n")
	for i, rec := range r.Recommendations() {
		fmt.Fprintf(sb, "%d. %s\n", i+1, rec)
	}
	sb.WriteString("\n---\n\n")
	sb.WriteString("Automated Document Admissibility Verification\n\n")
	fmt.Fprintf(sb, "Issued: %s\n", r.GeneratedAt)
}

// Recommendations derives corrective actions from the rejected and observed
// checks. A fully approved document gets the default proceed recommendation.
func (r *Report) Recommendations() []string {
	var recs []string

	for _, result := range r.Results {
		switch result.Status {
		case verify.StatusRejected:
			switch result.Name {
			case "blank_pages":
				recs = append(recs, "Remove the identified blank pages from the document")
			case "duplicate_pages":
				recs = append(recs, "Review and remove the detected duplicate pages")
			case "foliation":
				recs = append(recs, "Correct the sequential page numbering according to the applicable regulation")
			case "legibility":
				recs = append(recs, "Re-scan or replace the pages with low legibility")
			case "spelling":
				recs = append(recs, "Perform a thorough spelling correction of the document")
			}
		case verify.StatusObserved:
			switch result.Name {
			case "internal_similarity":
				recs = append(recs, "Review the sections with high similarity to verify authorship")
			case "legibility":
				recs = append(recs, "Consider improving the quality of the observed pages")
			}
		}
	}

	if len(recs) == 0 {
		recs = append(recs,
			"The document satisfies all admissibility requirements",
			"Proceed with the next step of the admission process",
		)
	}
	return recs
}

// htmlShell wraps the rendered body with minimal styling. The global status
// badge is colored according to the status-color mapping.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Admissibility Report: %s</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2rem auto; max-width: 52rem; color: #1a1a1a; }
table { border-collapse: collapse; margin-bottom: 1rem; }
th, td { border: 1px solid #bdc3c7; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #34495e; color: #ecf0f1; }
h1 { color: #1a1a1a; } h2 { color: #2c3e50; }
.status-badge { color: %s; font-weight: bold; }
</style>
</head>
<body>
%s
</body>
</html>
`

// ToHTML renders the report's markdown to a standalone HTML document.
func (r *Report) ToHTML() ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(r.ToMarkdown()), &body); err != nil {
		return nil, fmt.Errorf("rendering report HTML: %w", err)
	}

	color := statusColor(string(r.Summary.GlobalStatus))
	return fmt.Appendf(nil, htmlShell, r.Document, color, body.String()), nil
}

// joinInts renders ints as a comma-separated list.
func joinInts(values []int) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}
