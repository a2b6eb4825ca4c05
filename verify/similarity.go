package verify

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/foliocheck/foliocheck/extract"
)

// similarityDetailCap bounds how many page pairs get their own detail line.
const similarityDetailCap = 10

// SimilarityCheck scans every pair of sufficiently long pages for
// near-duplicate text using a matching-block similarity ratio. High similarity
// is soft evidence: the check reports observations, never rejections.
//
// This is the only quadratic pass in the pipeline; its cost is bounded by the
// number of pages above the length cutoff, not by the total page count.
type SimilarityCheck struct {
	threshold float64
	minChars  int
}

// NewSimilarityCheck creates the internal-similarity check from cfg.
func NewSimilarityCheck(cfg Config) *SimilarityCheck {
	return &SimilarityCheck{
		threshold: cfg.SimilarityRatio,
		minChars:  cfg.SimilarityMinChars,
	}
}

// Name returns the check identifier.
func (c *SimilarityCheck) Name() string { return "internal_similarity" }

type similarityCase struct {
	pageA, pageB int
	ratio        float64
}

// Run compares every unordered pair of eligible pages and records the pairs
// whose similarity reaches the threshold.
func (c *SimilarityCheck) Run(ctx context.Context, pages []extract.PageText) (*CheckResult, error) {
	type section struct {
		page int
		text string
	}

	var sections []section
	for _, page := range pages {
		trimmed := strings.TrimSpace(page.Text)
		if len(trimmed) > c.minChars {
			sections = append(sections, section{page: page.Number, text: trimmed})
		}
	}

	var cases []similarityCase
	for i := 0; i < len(sections); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i + 1; j < len(sections); j++ {
			ratio := MatchRatio(sections[i].text, sections[j].text)
			if ratio >= c.threshold {
				cases = append(cases, similarityCase{
					pageA: sections[i].page,
					pageB: sections[j].page,
					ratio: ratio,
				})
			}
		}
	}

	affectedSet := make(map[int]struct{})
	for _, cs := range cases {
		affectedSet[cs.pageA] = struct{}{}
		affectedSet[cs.pageB] = struct{}{}
	}
	affected := make([]int, 0, len(affectedSet))
	for page := range affectedSet {
		affected = append(affected, page)
	}
	slices.Sort(affected)

	compliance := 100 - float64(len(cases))/float64(max(len(sections), 1))*100
	if compliance < 0 {
		compliance = 0
	}

	result := &CheckResult{
		Name:            c.Name(),
		ComplianceRatio: compliance,
		AffectedPages:   affected,
	}

	if len(cases) == 0 {
		result.Status = StatusApproved
		result.Messages = []string{"no internal near-duplicate content detected"}
		return result, nil
	}

	result.Status = StatusObserved
	result.Messages = []string{fmt.Sprintf("detected %d high-similarity page pair(s)", len(cases))}
	for i, cs := range cases {
		if i == similarityDetailCap {
			result.Messages = append(result.Messages,
				fmt.Sprintf("... and %d more pair(s)", len(cases)-similarityDetailCap))
			break
		}
		result.Messages = append(result.Messages,
			fmt.Sprintf("pages %d and %d: %.2f%% similarity", cs.pageA, cs.pageB, cs.ratio*100))
	}

	return result, nil
}

// MatchRatio returns a similarity score in [0,1] for two texts: twice the
// total length of the matching blocks divided by the combined length of both
// texts. Blocks are found by locating the longest common substring and
// recursing into the unmatched remainders on each side.
//
// The operands are put in a canonical order first so that ties in the greedy
// block search cannot produce an asymmetric score: MatchRatio(a,b) always
// equals MatchRatio(b,a).
func MatchRatio(a, b string) float64 {
	if len(b) < len(a) || (len(b) == len(a) && b < a) {
		a, b = b, a
	}

	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}

	matched := matchedBlocksLen(ar, br, 0, len(ar), 0, len(br))
	return 2 * float64(matched) / float64(total)
}

// matchedBlocksLen sums the lengths of all matching blocks between
// a[alo:ahi] and b[blo:bhi].
func matchedBlocksLen(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchedBlocksLen(a, b, alo, i, blo, j) +
		matchedBlocksLen(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] within the
// given ranges. Of equally long blocks, the earliest in a, then the earliest
// in b, wins.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	b2j := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
