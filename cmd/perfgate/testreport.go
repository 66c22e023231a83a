package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"perfgate/internal/report"
	"perfgate/internal/testlog"

	"github.com/spf13/cobra"
)

var (
	trInput    string
	trOutput   string
	trCoverage string
)

var testreportCmd = &cobra.Command{
	Use:   "testreport",
	Short: "Generate an HTML report from a test run log",
	Long: `Parses a CTest-style log into per-suite pass/fail tallies and renders
them as a static HTML report. An lcov coverage file (or a directory
containing lcov.info) can be included as a coverage section.

This command reports, it does not gate: failed tests still exit 0.`,
	RunE: runTestReport,
}

func init() {
	rootCmd.AddCommand(testreportCmd)
	testreportCmd.Flags().StringVar(&trInput, "input", "", "Input test results log file (required)")
	testreportCmd.Flags().StringVar(&trOutput, "output", "", "Output HTML report file (required)")
	testreportCmd.Flags().StringVar(&trCoverage, "coverage", "", "lcov coverage file or directory containing lcov.info")
	testreportCmd.MarkFlagRequired("input")
	testreportCmd.MarkFlagRequired("output")
}

func runTestReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	logFile, err := os.Open(trInput)
	if err != nil {
		return fmt.Errorf("failed to open test log %s: %w", trInput, err)
	}
	defer logFile.Close()

	suites, err := testlog.NewParser().Parse(logFile)
	if err != nil {
		return fmt.Errorf("failed to parse test log %s: %w", trInput, err)
	}

	var coverage *testlog.Coverage
	if trCoverage != "" {
		coverage, err = loadCoverage(trCoverage)
		if err != nil {
			return err
		}
	}

	rep := report.TestReport{
		GeneratedAt: time.Now(),
		Suites:      suites,
		Coverage:    coverage,
	}
	if err := report.WriteTestReport(trOutput, rep); err != nil {
		return err
	}

	printSuiteSummaries(out, suites)
	if coverage != nil {
		fmt.Fprintf(out, "Total coverage: %.1f%%\n", coverage.Percent())
	}
	fmt.Fprintf(out, "Report written to %s\n", trOutput)
	return nil
}

// loadCoverage reads an lcov file; a directory argument means its lcov.info.
func loadCoverage(path string) (*testlog.Coverage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage input %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "lcov.info")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open coverage file %s: %w", path, err)
	}
	defer f.Close()

	cov, err := testlog.ParseLcov(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coverage file %s: %w", path, err)
	}
	return cov, nil
}
