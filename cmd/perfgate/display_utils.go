package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"perfgate/internal/benchmark"
	"perfgate/internal/testlog"
)

const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorReset = "\x1b[0m"
)

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

func printRegressionTable(out io.Writer, regressions []benchmark.Regression) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "BENCHMARK\tSUITE\tCURRENT\tBASELINE\tDIFF %")
	for _, r := range regressions {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s+%.2f%%%s\n",
			r.Name, r.Suite, r.CurrentTime, r.BaselineTime, colorRed, r.DiffPercent, colorReset)
	}
	w.Flush()
}

func printSuiteSummaries(out io.Writer, suites []*testlog.SuiteSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SUITE\tTOTAL\tPASSED\tFAILED")
	for _, s := range suites {
		failedColor := colorGreen
		if s.Failed > 0 {
			failedColor = colorRed
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s%d%s\n",
			s.Name, s.Total, s.Passed, failedColor, s.Failed, colorReset)
	}
	w.Flush()
}
