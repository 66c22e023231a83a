// Package report renders the comparison pipeline's output into static HTML
// and JSON artifacts. It is formatting only; every decision has already been
// made by the time data arrives here.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"perfgate/internal/benchmark"
)

// RegressionReport is the full input for the regression HTML page.
type RegressionReport struct {
	GeneratedAt      time.Time
	CurrentRevision  string
	BaselineRevision string
	Threshold        float64
	Regressions      []benchmark.Regression
}

// regressionRow is one table/chart row with precomputed bar widths.
type regressionRow struct {
	benchmark.Regression
	CurrentBarPct  float64
	BaselineBarPct float64
}

type regressionView struct {
	RegressionReport
	Rows []regressionRow
}

// WriteRegressionReport writes regression_report.html into dir.
func WriteRegressionReport(dir string, rep RegressionReport) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	view := regressionView{RegressionReport: rep}
	for _, r := range rep.Regressions {
		row := regressionRow{Regression: r}
		// Scale both bars against the slower of the two runs.
		max := r.CurrentTime
		if r.BaselineTime > max {
			max = r.BaselineTime
		}
		if max > 0 {
			row.CurrentBarPct = r.CurrentTime / max * 100
			row.BaselineBarPct = r.BaselineTime / max * 100
		}
		view.Rows = append(view.Rows, row)
	}

	path := filepath.Join(dir, "regression_report.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer f.Close()

	tmpl := template.Must(template.New("regression").Parse(regressionTemplate))
	if err := tmpl.Execute(f, view); err != nil {
		return fmt.Errorf("failed to render regression report: %w", err)
	}
	return nil
}

// WriteResultsJSON writes the normalized current-run measurements as
// results.json next to the HTML report.
func WriteResultsJSON(dir string, sets []benchmark.ResultSet) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, "results.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sets); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

const regressionTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Performance Regression Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 1100px; margin: 0 auto; padding: 20px; background: #f4f4f9; }
        h1, h2 { color: #2c3e50; }
        .header { background: #fff; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 20px; }
        .section { background: #fff; padding: 25px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 30px; }
        table { width: 100%; border-collapse: collapse; margin-top: 15px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f8f9fa; }
        tr:hover { background-color: #f1f1f1; }
        .regression { color: #c0392b; font-weight: bold; }
        .ok { color: #27ae60; font-weight: bold; }
        .bar-track { background: #f0f0f0; height: 16px; border-radius: 3px; margin: 2px 0; }
        .bar-current { background: #c0392b; height: 100%; border-radius: 3px; }
        .bar-baseline { background: #3498db; height: 100%; border-radius: 3px; }
        .bar-label { font-size: 0.8em; color: #7f8c8d; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Performance Regression Report</h1>
        <p>Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
        <p>Current: <strong>{{.CurrentRevision}}</strong> vs. Baseline: <strong>{{.BaselineRevision}}</strong> | Threshold: {{printf "%.1f" .Threshold}}%</p>
    </div>

    <div class="section">
        <h2>Regressions</h2>
        {{if .Rows}}
        <table>
            <tr>
                <th>Benchmark</th>
                <th>Suite</th>
                <th>Current Time</th>
                <th>Baseline Time</th>
                <th>Difference</th>
            </tr>
            {{range .Rows}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Suite}}</td>
                <td>{{printf "%.2f" .CurrentTime}}</td>
                <td>{{printf "%.2f" .BaselineTime}}</td>
                <td class="regression">{{printf "+%.2f" .DiffPercent}}%</td>
            </tr>
            {{end}}
        </table>
        {{else}}
        <p class="ok">No performance regressions found.</p>
        {{end}}
    </div>

    {{if .Rows}}
    <div class="section">
        <h2>Current vs. Baseline</h2>
        {{range .Rows}}
        <p><strong>{{.Name}}</strong> ({{.Suite}})</p>
        <div class="bar-track"><div class="bar-current" style="width: {{printf "%.1f" .CurrentBarPct}}%"></div></div>
        <div class="bar-label">current {{printf "%.2f" .CurrentTime}}</div>
        <div class="bar-track"><div class="bar-baseline" style="width: {{printf "%.1f" .BaselineBarPct}}%"></div></div>
        <div class="bar-label">baseline {{printf "%.2f" .BaselineTime}}</div>
        {{end}}
    </div>
    {{end}}
</body>
</html>
`
