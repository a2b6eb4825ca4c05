package verify

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/foliocheck/foliocheck/extract"
)

// folioPages builds pages whose text declares the given folio numbers.
// A folio of 0 produces a page without any folio marker.
func folioPages(folios ...int) []extract.PageText {
	pages := make([]extract.PageText, 0, len(folios))
	for i, folio := range folios {
		text := "Content of the page without any numbering."
		if folio > 0 {
			text = fmt.Sprintf("Folio: %d\nContent of the page.", folio)
		}
		pages = append(pages, extract.PageText{Number: i + 1, Text: text})
	}
	return pages
}

func TestFoliationCheck(t *testing.T) {
	tests := []struct {
		name         string
		pages        []extract.PageText
		wantStatus   Status
		wantAffected []int
	}{
		{
			name:         "sequential foliation",
			pages:        folioPages(1, 2, 3),
			wantStatus:   StatusApproved,
			wantAffected: nil,
		},
		{
			name:         "skipped folio rejects a small document",
			pages:        folioPages(1, 3),
			wantStatus:   StatusRejected,
			wantAffected: []int{2},
		},
		{
			name:         "missing marker counts as mismatch",
			pages:        folioPages(1, 0, 3),
			wantStatus:   StatusRejected,
			wantAffected: []int{2},
		},
		{
			name: "few mismatches in a long document are observed",
			pages: append(folioPages(
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19), extract.PageText{
				Number: 20,
				Text:   "Folio: 99\nContent of the page.",
			}),
			wantStatus:   StatusObserved,
			wantAffected: []int{20},
		},
	}

	check := NewFoliationCheck(DefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := check.Run(context.Background(), tt.pages)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, result.Status)
			}
			assertPages(t, result.AffectedPages, tt.wantAffected)
		})
	}
}

func TestFoliationCheckMismatchDetails(t *testing.T) {
	check := NewFoliationCheck(DefaultConfig())

	result, err := check.Run(context.Background(), folioPages(1, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(result.Messages, "\n")
	if !strings.Contains(joined, "page 2: expected folio 2, found 3") {
		t.Errorf("expected mismatch detail in messages, got %v", result.Messages)
	}
}

func TestDeclaredFolio(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantFolio int
		wantFound bool
	}{
		{"labeled folio", "Folio: 12\nsome text", 12, true},
		{"labeled folio lowercase no colon", "folio 7", 7, true},
		{"foja marker", "FOJA: 4\ntext", 4, true},
		{"pagina marker accented", "Página: 9", 9, true},
		{"pagina marker unaccented", "Pagina: 9", 9, true},
		{"page marker", "Page: 2 of 10", 2, true},
		{"bare number on its own line", "some heading\n  15  \nbody text", 15, true},
		{"label wins over bare number", "8\nFolio: 3", 3, true},
		{"inline number is not a folio", "the amount is 1500 pesos", 0, false},
		{"no number at all", "plain prose without numbering", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folio, found := declaredFolio(tt.text)
			if found != tt.wantFound {
				t.Fatalf("expected found=%v, got %v", tt.wantFound, found)
			}
			if folio != tt.wantFolio {
				t.Errorf("expected folio %d, got %d", tt.wantFolio, folio)
			}
		})
	}
}
