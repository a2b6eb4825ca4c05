package verify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/foliocheck/foliocheck/extract"
)

// Runner executes the verification pipeline: every configured check gets the
// same read-only snapshot of extracted pages and contributes one result.
// Execution is sequential and deterministic; reruns over identical text with
// identical thresholds produce identical results.
type Runner struct {
	cfg     Config
	log     *zap.Logger
	grammar GrammarChecker
	checks  []Check
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithGrammarChecker sets the delegate backing the spelling check. Without a
// delegate the spelling check reports UNPROCESSED.
func WithGrammarChecker(g GrammarChecker) Option {
	return func(r *Runner) { r.grammar = g }
}

// WithChecks replaces the default check set.
func WithChecks(checks ...Check) Option {
	return func(r *Runner) { r.checks = checks }
}

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg Config, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	if r.checks == nil {
		r.checks = DefaultChecks(cfg, r.grammar)
	}
	return r
}

// DefaultChecks returns the standard check sequence for cfg. The spelling
// check is appended only when enabled.
func DefaultChecks(cfg Config, grammar GrammarChecker) []Check {
	checks := []Check{
		NewBlankPageCheck(cfg),
		NewFoliationCheck(cfg),
		NewDuplicatePageCheck(cfg),
		NewLegibilityCheck(cfg),
		NewSimilarityCheck(cfg),
	}
	if cfg.GrammarCheckEnabled {
		checks = append(checks, NewSpellingCheck(cfg, grammar))
	}
	return checks
}

// Run executes every check against the document's pages and returns the
// ordered results. A failing or panicking check degrades to an UNPROCESSED
// result for that check only; the remaining checks still run.
func (r *Runner) Run(ctx context.Context, doc *extract.Document) []CheckResult {
	r.log.Info("starting verification",
		zap.String("document", doc.Name()),
		zap.Int("total_pages", doc.TotalPages),
		zap.Int("checks", len(r.checks)),
	)

	results := make([]CheckResult, 0, len(r.checks))
	for _, check := range r.checks {
		start := time.Now()
		result := r.runCheck(ctx, check, doc.Pages)
		elapsed := time.Since(start)
		observeCheck(result, elapsed.Seconds())

		r.log.Info("check finished",
			zap.String("check", result.Name),
			zap.String("status", string(result.Status)),
			zap.Float64("compliance", result.ComplianceRatio),
			zap.Int("affected_pages", len(result.AffectedPages)),
			zap.Duration("elapsed", elapsed),
		)
		results = append(results, *result)
	}

	summary := Summarize(results)
	metricDocumentsTotal.WithLabelValues(string(summary.GlobalStatus)).Inc()

	r.log.Info("verification finished",
		zap.String("document", doc.Name()),
		zap.String("global_status", string(summary.GlobalStatus)),
		zap.Int("approved", summary.Approved),
		zap.Int("observed", summary.Observed),
		zap.Int("rejected", summary.Rejected),
	)
	return results
}

// runCheck executes a single check with fault isolation.
func (r *Runner) runCheck(ctx context.Context, check Check, pages []extract.PageText) (result *CheckResult) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("check panicked",
				zap.String("check", check.Name()),
				zap.Any("panic", p),
			)
			result = &CheckResult{
				Name:     check.Name(),
				Status:   StatusUnprocessed,
				Messages: []string{fmt.Sprintf("check failed internally: %v", p)},
			}
		}
	}()

	result, err := check.Run(ctx, pages)
	if err != nil {
		r.log.Warn("check errored",
			zap.String("check", check.Name()),
			zap.Error(err),
		)
		return &CheckResult{
			Name:     check.Name(),
			Status:   StatusUnprocessed,
			Messages: []string{fmt.Sprintf("check could not complete: %v", err)},
		}
	}
	return result
}
