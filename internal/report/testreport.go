package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"perfgate/internal/testlog"
)

// TestReport is the full input for the functional test HTML page.
// Coverage is optional.
type TestReport struct {
	GeneratedAt time.Time
	Suites      []*testlog.SuiteSummary
	Coverage    *testlog.Coverage
}

type suiteRow struct {
	*testlog.SuiteSummary
	SuccessRate float64
}

type testReportView struct {
	TestReport
	Summary []suiteRow
}

// WriteTestReport renders the test report to the given file path.
func WriteTestReport(path string, rep TestReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	view := testReportView{TestReport: rep}
	for _, s := range rep.Suites {
		row := suiteRow{SuiteSummary: s}
		if s.Total > 0 {
			row.SuccessRate = float64(s.Passed) / float64(s.Total) * 100
		}
		view.Summary = append(view.Summary, row)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer f.Close()

	tmpl := template.Must(template.New("testreport").Parse(testReportTemplate))
	if err := tmpl.Execute(f, view); err != nil {
		return fmt.Errorf("failed to render test report: %w", err)
	}
	return nil
}

const testReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Test Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333; max-width: 1100px; margin: 0 auto; padding: 20px; background: #f4f4f9; }
        h1, h2, h3 { color: #2c3e50; }
        .header { background: #fff; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 20px; }
        .section { background: #fff; padding: 25px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); margin-bottom: 30px; }
        table { width: 100%; border-collapse: collapse; margin-top: 15px; }
        th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #f8f9fa; }
        tr:hover { background-color: #f1f1f1; }
        .passed { color: #27ae60; }
        .failed { color: #c0392b; }
        .progress { background-color: #f0f0f0; height: 20px; border-radius: 3px; }
        .progress-bar { background-color: #4CAF50; height: 100%; border-radius: 3px; }
        pre { background: #f4f4f4; padding: 8px; border-radius: 3px; font-size: 0.85em; white-space: pre-wrap; margin: 0; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Test Report</h1>
        <p>Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}</p>
    </div>

    <div class="section">
        <h2>Summary</h2>
        <table>
            <tr>
                <th>Test Suite</th>
                <th>Total</th>
                <th>Passed</th>
                <th>Failed</th>
                <th>Success Rate</th>
            </tr>
            {{range .Summary}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Total}}</td>
                <td class="passed">{{.Passed}}</td>
                <td class="failed">{{.Failed}}</td>
                <td>{{printf "%.1f" .SuccessRate}}%</td>
            </tr>
            {{end}}
        </table>
    </div>

    {{range .Suites}}
    <div class="section">
        <h2>{{.Name}} Tests</h2>
        <table>
            <tr>
                <th>#</th>
                <th>Test Name</th>
                <th>Status</th>
                <th>Details</th>
            </tr>
            {{range .Tests}}
            <tr>
                <td>{{.Number}}</td>
                <td>{{.Name}}</td>
                <td class="{{if eq .Status "Passed"}}passed{{else}}failed{{end}}">{{.Status}}</td>
                <td>{{if .Output}}<pre>{{.Output}}</pre>{{end}}</td>
            </tr>
            {{end}}
        </table>
    </div>
    {{end}}

    {{if .Coverage}}
    <div class="section">
        <h2>Code Coverage</h2>
        <p>Total Coverage: {{printf "%.1f" .Coverage.Percent}}%</p>
        <div class="progress">
            <div class="progress-bar" style="width: {{printf "%.1f" .Coverage.Percent}}%"></div>
        </div>

        <h3>File Coverage</h3>
        <table>
            <tr>
                <th>File</th>
                <th>Lines</th>
                <th>Covered</th>
                <th>Coverage</th>
            </tr>
            {{range .Coverage.Files}}
            <tr>
                <td>{{.Name}}</td>
                <td>{{.Lines}}</td>
                <td>{{.Covered}}</td>
                <td>{{printf "%.1f" .Percent}}%</td>
            </tr>
            {{end}}
        </table>
    </div>
    {{end}}
</body>
</html>
`
