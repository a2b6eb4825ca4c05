package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "foliocheck",
	Short: "Foliocheck - Automated document admissibility verification",
	Long: `Foliocheck runs automated admissibility checks on scanned PDF case files.

It verifies:
- Blank pages and sequential foliation
- Duplicate pages (content hashing)
- Page legibility (character-class heuristics)
- Internal near-duplicate text across pages
- Spelling/grammar via an external LanguageTool-compatible service

Results are aggregated into a single admissibility decision and rendered as a
structured (JSON/YAML) or formatted (Markdown/HTML) report.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
