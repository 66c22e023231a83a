package benchmark

import "time"

// Measurement represents a single benchmark measurement as emitted by a
// Google-Benchmark-style tool. Name is the join key for comparisons and
// must be unique within one result set.
type Measurement struct {
	Name     string    `json:"name"`
	RealTime float64   `json:"real_time,omitempty"`
	MeanTime float64   `json:"mean,omitempty"`
	StdDev   float64   `json:"stddev,omitempty"`
	Min      float64   `json:"min,omitempty"`
	Max      float64   `json:"max,omitempty"`
	Samples  []float64 `json:"samples,omitempty"`
}

// Time returns the timing value used for comparison: real_time if the tool
// reported one, otherwise the mean. Units are whatever the tool emitted and
// must be consistent across compared runs.
func (m Measurement) Time() float64 {
	if m.RealTime != 0 {
		return m.RealTime
	}
	return m.MeanTime
}

// ResultSet holds the measurements from one benchmark executable.
// Measurement order is the tool's emission order.
type ResultSet struct {
	Suite        string        `json:"suite"`
	Measurements []Measurement `json:"measurements"`
}

// Snapshot is the on-disk cache payload for a baseline run. Revision records
// what was checked out when the measurements were taken, Suites the sorted
// name=path pairs that were run; a cache written for a different revision or
// suite set is never reused.
type Snapshot struct {
	Revision  string      `json:"revision"`
	Timestamp time.Time   `json:"timestamp"`
	Suites    []string    `json:"suites,omitempty"`
	Sets      []ResultSet `json:"sets"`
}

// Regression records one benchmark that got slower than the baseline by more
// than the configured threshold. DiffPercent is signed: positive means the
// current run is slower.
type Regression struct {
	Name         string  `json:"name"`
	Suite        string  `json:"suite"`
	CurrentTime  float64 `json:"current_time"`
	BaselineTime float64 `json:"baseline_time"`
	DiffPercent  float64 `json:"diff_percent"`
}

// SuiteSpec maps a suite name to the benchmark executable that produces it.
type SuiteSpec struct {
	Name string
	Path string
}
