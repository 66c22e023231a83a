package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"perfgate/internal/benchmark"
	"perfgate/internal/buildsys"
	"perfgate/internal/git"
	"perfgate/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	regBaseline  string
	regThreshold float64
	regOutputDir string
	regBuildDir  string
	regRepoDir   string
	regSuites    []string
	regRefresh   bool
)

// Factories are package vars so tests can swap in fakes.
var (
	newRunnerFunc = func(dir string) benchmark.Runner {
		return benchmark.NewExecRunner(dir)
	}
	newGitFunc = func() git.IClient {
		return git.NewClient()
	}
	newBuilderFunc = func(cmd *cobra.Command, repoDir, buildDir string) buildsys.Builder {
		return buildsys.NewCMakeBuilder(repoDir, buildDir, viper.GetString("build_config"),
			cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
)

var regressionCmd = &cobra.Command{
	Use:   "regression",
	Short: "Run benchmarks and compare against a baseline revision",
	Long: `Runs the configured benchmark executables, measures the baseline
revision under the same environment (checkout, rebuild, rerun, restore), and
reports every benchmark that got slower than the threshold.

Exits 1 when regressions are found and 2 on acquisition or build failure.`,
	RunE: runRegression,
}

func init() {
	rootCmd.AddCommand(regressionCmd)
	regressionCmd.Flags().StringVar(&regBaseline, "baseline", "", "Baseline branch or commit to compare against (default \"main\")")
	regressionCmd.Flags().Float64Var(&regThreshold, "threshold", 0, "Regression threshold in percent (default 10.0)")
	regressionCmd.Flags().StringVar(&regOutputDir, "output-dir", "", "Directory for reports and the baseline cache (default \"benchmark_results\")")
	regressionCmd.Flags().StringVar(&regBuildDir, "build-dir", "", "CMake build directory used for the baseline rebuild (default \"build\")")
	regressionCmd.Flags().StringVar(&regRepoDir, "repo", ".", "Repository working tree the benchmarks run in")
	regressionCmd.Flags().StringArrayVar(&regSuites, "suite", nil, "Benchmark suite as name=executable (repeatable)")
	regressionCmd.Flags().BoolVar(&regRefresh, "refresh-baseline", false, "Ignore the cached baseline snapshot and re-measure")
}

func runRegression(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	baseline := regBaseline
	if baseline == "" {
		baseline = viper.GetString("baseline")
	}
	threshold := regThreshold
	if !cmd.Flags().Changed("threshold") {
		threshold = viper.GetFloat64("threshold")
	}
	outputDir := regOutputDir
	if outputDir == "" {
		outputDir = viper.GetString("output_dir")
	}
	buildDir := regBuildDir
	if buildDir == "" {
		buildDir = viper.GetString("build_dir")
	}
	suiteArgs := regSuites
	if len(suiteArgs) == 0 {
		suiteArgs = viper.GetStringSlice("suites")
	}

	specs, err := parseSuiteSpecs(suiteArgs)
	if err != nil {
		return err
	}

	gitClient := newGitFunc()
	if !gitClient.RepoExists(regRepoDir) {
		return fmt.Errorf("%s is not a git repository; baseline acquisition needs one", regRepoDir)
	}

	currentRev, err := gitClient.CurrentBranch(ctx, regRepoDir)
	if err != nil {
		return fmt.Errorf("failed to determine current revision: %w", err)
	}

	runner := newRunnerFunc(regRepoDir)

	fmt.Fprintln(out, "Running current benchmarks...")
	current, warnings, err := runner.Run(ctx, specs)
	if err != nil {
		return fmt.Errorf("current benchmark acquisition failed: %w", err)
	}
	printWarnings(errOut, warnings)

	fmt.Fprintf(out, "Getting baseline results from %s...\n", baseline)
	fetcher := &benchmark.BaselineFetcher{
		Git:     gitClient,
		Builder: newBuilderFunc(cmd, regRepoDir, buildDir),
		Runner:  runner,
		Store:   benchmark.NewSnapshotStore(filepath.Join(outputDir, "baseline", "results.json")),
		Dir:     regRepoDir,
	}
	baselineSets, warnings, err := fetcher.Fetch(ctx, baseline, specs, regRefresh)
	if err != nil {
		return err
	}
	printWarnings(errOut, warnings)

	fmt.Fprintln(out, "Comparing results...")
	regressions, warnings := benchmark.Compare(current, baselineSets, threshold)
	printWarnings(errOut, warnings)

	fmt.Fprintln(out, "Generating report...")
	if err := report.WriteResultsJSON(outputDir, current); err != nil {
		return err
	}
	if err := report.WriteRegressionReport(outputDir, report.RegressionReport{
		GeneratedAt:      time.Now(),
		CurrentRevision:  currentRev,
		BaselineRevision: baseline,
		Threshold:        threshold,
		Regressions:      regressions,
	}); err != nil {
		return err
	}

	if len(regressions) == 0 {
		fmt.Fprintln(out, "\nNo performance regressions found.")
		return nil
	}

	fmt.Fprintln(out)
	printRegressionTable(out, regressions)
	return &regressionsFoundError{count: len(regressions)}
}

// parseSuiteSpecs turns repeated name=path arguments into suite specs.
func parseSuiteSpecs(args []string) ([]benchmark.SuiteSpec, error) {
	specs := make([]benchmark.SuiteSpec, 0, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid suite %q, expected name=executable", arg)
		}
		specs = append(specs, benchmark.SuiteSpec{Name: name, Path: path})
	}
	return specs, nil
}
