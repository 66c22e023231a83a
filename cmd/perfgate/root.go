package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exit = os.Exit
var cfgFile string

// Exit codes: 0 no regressions, 1 regressions found, 2 fatal failure
// (acquisition, build, I/O). Warnings never change the exit code.
const (
	exitOK          = 0
	exitRegressions = 1
	exitFatal       = 2
)

var rootCmd = &cobra.Command{
	Use:   "perfgate",
	Short: "Benchmark regression gate and test report generator",
	Long: `perfgate compares freshly measured benchmark timings against a
baseline revision of the same codebase and fails when any benchmark got
slower than the configured threshold. It also renders functional test logs
and coverage data as static HTML reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and maps the outcome to the exit code
// contract above.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			exit(exitFatal)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var regErr *regressionsFoundError
		if errors.As(err, &regErr) {
			exit(exitRegressions)
			return
		}
		exit(exitFatal)
	}
}

// regressionsFoundError marks the "comparison worked, benchmarks got slower"
// outcome so Execute can tell it apart from fatal setup failures.
type regressionsFoundError struct {
	count int
}

func (e *regressionsFoundError) Error() string {
	return fmt.Sprintf("found %d performance regression(s)", e.count)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./perfgate.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and PERFGATE_* environment variables.
func initConfig() {
	// explicit .env loading; a missing file is fine
	godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("perfgate")
	}

	viper.SetEnvPrefix("PERFGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("baseline", "main")
	viper.SetDefault("threshold", 10.0)
	viper.SetDefault("output_dir", "benchmark_results")
	viper.SetDefault("build_dir", "build")
	viper.SetDefault("build_config", "Release")
	viper.SetDefault("suites", []string{
		"compute_shader=./compute_shader_benchmark",
		"vulkan_performance=./vulkan_performance_tests",
	})

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
