package verify

import "testing"

func results(statuses ...Status) []CheckResult {
	out := make([]CheckResult, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, CheckResult{Status: s})
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     GlobalStatus
	}{
		{
			name:     "all approved",
			statuses: []Status{StatusApproved, StatusApproved, StatusApproved},
			want:     Admissible,
		},
		{
			name:     "no results",
			statuses: nil,
			want:     Admissible,
		},
		{
			name:     "observation downgrades",
			statuses: []Status{StatusApproved, StatusObserved},
			want:     AdmissibleWithObservations,
		},
		{
			name:     "any rejection dominates",
			statuses: []Status{StatusApproved, StatusObserved, StatusRejected},
			want:     NotAdmissible,
		},
		{
			name:     "unprocessed does not affect the decision",
			statuses: []Status{StatusApproved, StatusUnprocessed},
			want:     Admissible,
		},
		{
			name:     "unprocessed plus observation",
			statuses: []Status{StatusObserved, StatusUnprocessed},
			want:     AdmissibleWithObservations,
		},
		{
			name:     "all unprocessed",
			statuses: []Status{StatusUnprocessed, StatusUnprocessed},
			want:     Admissible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aggregate(results(tt.statuses...)); got != tt.want {
				t.Errorf("Aggregate(%v) = %s, want %s", tt.statuses, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(results(
		StatusApproved, StatusApproved, StatusObserved, StatusRejected, StatusUnprocessed,
	))

	if summary.TotalChecks != 5 {
		t.Errorf("expected 5 total checks, got %d", summary.TotalChecks)
	}
	if summary.Approved != 2 {
		t.Errorf("expected 2 approved, got %d", summary.Approved)
	}
	if summary.Observed != 1 {
		t.Errorf("expected 1 observed, got %d", summary.Observed)
	}
	if summary.Rejected != 1 {
		t.Errorf("expected 1 rejected, got %d", summary.Rejected)
	}
	if summary.Unprocessed != 1 {
		t.Errorf("expected 1 unprocessed, got %d", summary.Unprocessed)
	}
	if summary.GlobalStatus != NotAdmissible {
		t.Errorf("expected %s, got %s", NotAdmissible, summary.GlobalStatus)
	}
}
