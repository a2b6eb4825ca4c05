package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliocheck/foliocheck/extract"
	"github.com/foliocheck/foliocheck/grammar"
	"github.com/foliocheck/foliocheck/logging"
	"github.com/foliocheck/foliocheck/report"
	"github.com/foliocheck/foliocheck/verify"
)

var (
	configPath      string
	outputPath      string
	outputFormat    string
	checkFilter     string
	logStyle        string
	logLevel        string
	archiveEndpoint string
	archiveBucket   string
	archiveUseSSL   bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <document.pdf>",
	Short: "Run all admissibility checks on a document",
	Long: `Run the admissibility verification pipeline on a PDF document.

Examples:
  # Verify with defaults, print summary to the console
  foliocheck verify casefile.pdf

  # Custom thresholds from a config file, JSON report to disk
  foliocheck verify casefile.pdf --config foliocheck.yaml --output report.json

  # Formatted report
  foliocheck verify casefile.pdf --output report.html --format html

  # Only some checks
  foliocheck verify casefile.pdf --checks blank_pages,duplicate_pages
`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
	verifyCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Report output file path")
	verifyCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Report format: json, yaml, markdown, html")
	verifyCmd.Flags().StringVarP(&checkFilter, "checks", "k", "", "Comma-separated list of checks to run (default: all)")
	verifyCmd.Flags().StringVar(&logStyle, "log-style", "terminal", "Log style: terminal, json, noop")
	verifyCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	verifyCmd.Flags().StringVar(&archiveEndpoint, "archive-endpoint", "", "S3-compatible endpoint for report archival")
	verifyCmd.Flags().StringVar(&archiveBucket, "archive-bucket", "", "Bucket for report archival")
	verifyCmd.Flags().BoolVar(&archiveUseSSL, "archive-ssl", true, "Use TLS for report archival")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	documentPath := args[0]

	cfg := verify.DefaultConfig()
	if configPath != "" {
		loaded, err := verify.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	log := logging.NewLogger(&logging.Config{
		Style: logging.Style(logStyle),
		Level: logLevel,
	})
	defer log.Sync()

	doc, err := extract.Open(documentPath)
	if err != nil {
		// A document that cannot be loaded still produces a report: an
		// error-only one with no check results.
		rep := report.BuildLoadError(documentPath, err, time.Now(), cfg.TimestampFormat)
		rep.Print()
		if outputPath != "" {
			if saveErr := rep.SaveToFile(outputPath, outputFormat, true); saveErr != nil {
				return saveErr
			}
		}
		return err
	}

	opts := []verify.Option{verify.WithLogger(log)}

	var delegate verify.GrammarChecker
	if cfg.GrammarCheckEnabled {
		checker := grammar.NewLanguageTool(cfg.GrammarEndpoint, cfg.LanguageCode,
			grammar.WithRateLimit(30))
		defer checker.Close()
		delegate = checker
		opts = append(opts, verify.WithGrammarChecker(checker))
	}

	if checkFilter != "" {
		checks := filterChecks(verify.DefaultChecks(cfg, delegate), strings.Split(checkFilter, ","))
		if len(checks) == 0 {
			return fmt.Errorf("no checks match filter %q", checkFilter)
		}
		opts = append(opts, verify.WithChecks(checks...))
	}

	runner := verify.NewRunner(cfg, opts...)
	results := runner.Run(ctx, doc)

	rep := report.Build(doc.Name(), doc.TotalPages, results, time.Now(), cfg.TimestampFormat)

	fmt.Println()
	rep.Print()

	if outputPath != "" {
		if err := rep.SaveToFile(outputPath, outputFormat, true); err != nil {
			return err
		}
		fmt.Printf("\nReport saved to: %s\n", outputPath)
	}

	if archiveBucket != "" {
		if err := archiveReport(cmd, rep); err != nil {
			return err
		}
	}

	return nil
}

// filterChecks keeps the checks whose names appear in the filter list.
func filterChecks(checks []verify.Check, names []string) []verify.Check {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.TrimSpace(name)] = true
	}

	var filtered []verify.Check
	for _, check := range checks {
		if wanted[check.Name()] {
			filtered = append(filtered, check)
		}
	}
	return filtered
}

// archiveReport uploads the serialized report to the configured bucket.
// Credentials come from the environment.
func archiveReport(cmd *cobra.Command, rep *report.Report) error {
	creds := &report.ArchiveCredentials{
		Endpoint:        archiveEndpoint,
		AccessKeyID:     os.Getenv("FOLIOCHECK_S3_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("FOLIOCHECK_S3_SECRET_KEY"),
		UseSSL:          archiveUseSSL,
		Bucket:          archiveBucket,
	}

	data, err := rep.ToJSON(true)
	if err != nil {
		return fmt.Errorf("serializing report for archival: %w", err)
	}

	objectKey := fmt.Sprintf("reports/%s/%s.json", rep.Document, rep.RunID)
	if err := creds.Archive(cmd.Context(), objectKey, "json", data); err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}

	fmt.Printf("Report archived to: s3://%s/%s\n", archiveBucket, objectKey)
	return nil
}
