package benchmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

// Runner acquires benchmark results. It returns one ResultSet per suite that
// produced parsable output, plus warnings for suites that were skipped.
type Runner interface {
	Run(ctx context.Context, specs []SuiteSpec) ([]ResultSet, []string, error)
}

// runnerExecCommand allows mocking in tests.
var runnerExecCommand = exec.CommandContext

// ExecRunner implements Runner by invoking each benchmark executable with
// --benchmark_format=json and parsing its stdout. Executables run
// sequentially, each to completion before the next starts.
type ExecRunner struct {
	// Dir is the working directory the executables run in.
	Dir string
}

func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{Dir: dir}
}

// benchmarkOutput mirrors the top-level object a Google-Benchmark-style tool
// emits. Anything besides the benchmarks array (e.g. the context block) is
// ignored.
type benchmarkOutput struct {
	Benchmarks []Measurement `json:"benchmarks"`
}

func (r *ExecRunner) Run(ctx context.Context, specs []SuiteSpec) ([]ResultSet, []string, error) {
	var sets []ResultSet
	var warnings []string

	for _, spec := range specs {
		cmd := runnerExecCommand(ctx, spec.Path, "--benchmark_format=json")
		if r.Dir != "" {
			cmd.Dir = r.Dir
		}

		var outBuf, errBuf bytes.Buffer
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf

		if err := cmd.Run(); err != nil {
			// A failing benchmark binary invalidates the whole acquisition;
			// a broken suite must not silently vanish from the comparison.
			return nil, warnings, fmt.Errorf("suite %s: benchmark executable %s failed: %w\nStderr: %s",
				spec.Name, spec.Path, err, errBuf.String())
		}

		measurements, err := ParseResults(outBuf.Bytes())
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("suite %s: skipping, unparsable benchmark output: %v", spec.Name, err))
			continue
		}

		sets = append(sets, ResultSet{Suite: spec.Name, Measurements: measurements})
	}

	return sets, warnings, nil
}

// ParseResults decodes the JSON a benchmark tool writes with
// --benchmark_format=json. The output must be a top-level object with a
// benchmarks array; each entry needs a name and a timing field.
func ParseResults(data []byte) ([]Measurement, error) {
	var out benchmarkOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding benchmark JSON: %w", err)
	}
	if out.Benchmarks == nil {
		return nil, fmt.Errorf("benchmark JSON has no 'benchmarks' array")
	}
	return out.Benchmarks, nil
}
