package verify

// Summary contains aggregate statistics across all check results plus the
// derived document-level admissibility status.
type Summary struct {
	// TotalChecks is the number of checks that ran (including UNPROCESSED).
	TotalChecks int `json:"total_checks" yaml:"total_checks"`

	// Approved is the number of APPROVED checks.
	Approved int `json:"approved" yaml:"approved"`

	// Observed is the number of OBSERVED checks.
	Observed int `json:"observed" yaml:"observed"`

	// Rejected is the number of REJECTED checks.
	Rejected int `json:"rejected" yaml:"rejected"`

	// Unprocessed is the number of checks that could not run.
	Unprocessed int `json:"unprocessed" yaml:"unprocessed"`

	// GlobalStatus is the document-level admissibility decision.
	GlobalStatus GlobalStatus `json:"global_status" yaml:"global_status"`
}

// Aggregate derives the global admissibility status from the check results.
// Any rejection makes the document inadmissible; otherwise any observation
// makes it admissible with observations. UNPROCESSED checks are neither pass
// nor fail and do not influence the decision.
func Aggregate(results []CheckResult) GlobalStatus {
	rejected := 0
	observed := 0
	for _, r := range results {
		switch r.Status {
		case StatusRejected:
			rejected++
		case StatusObserved:
			observed++
		}
	}

	switch {
	case rejected > 0:
		return NotAdmissible
	case observed > 0:
		return AdmissibleWithObservations
	default:
		return Admissible
	}
}

// Summarize counts results per status and attaches the aggregate decision.
func Summarize(results []CheckResult) Summary {
	s := Summary{TotalChecks: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusApproved:
			s.Approved++
		case StatusObserved:
			s.Observed++
		case StatusRejected:
			s.Rejected++
		case StatusUnprocessed:
			s.Unprocessed++
		}
	}
	s.GlobalStatus = Aggregate(results)
	return s
}
