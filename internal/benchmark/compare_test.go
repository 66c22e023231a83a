package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_RegressionPastThreshold(t *testing.T) {
	current := []ResultSet{
		{Suite: "compute_shader", Measurements: []Measurement{{Name: "A", RealTime: 120}}},
	}
	baseline := []ResultSet{
		{Suite: "compute_shader", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}

	regressions, warnings := Compare(current, baseline, 10)

	require.Len(t, regressions, 1)
	assert.Empty(t, warnings)

	r := regressions[0]
	assert.Equal(t, "A", r.Name)
	assert.Equal(t, "compute_shader", r.Suite)
	assert.Equal(t, 120.0, r.CurrentTime)
	assert.Equal(t, 100.0, r.BaselineTime)
	assert.InDelta(t, 20.0, r.DiffPercent, 0.0001)
}

func TestCompare_WithinThreshold(t *testing.T) {
	current := []ResultSet{
		{Suite: "compute_shader", Measurements: []Measurement{{Name: "A", RealTime: 105}}},
	}
	baseline := []ResultSet{
		{Suite: "compute_shader", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}

	regressions, warnings := Compare(current, baseline, 10)

	assert.Empty(t, regressions)
	assert.Empty(t, warnings)
}

func TestCompare_ExactlyAtThreshold(t *testing.T) {
	// diffPercent must be strictly greater than the threshold.
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 110}}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}

	regressions, _ := Compare(current, baseline, 10)
	assert.Empty(t, regressions)
}

func TestCompare_FasterProducesNoRecord(t *testing.T) {
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 50}}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}

	regressions, warnings := Compare(current, baseline, 10)
	assert.Empty(t, regressions)
	assert.Empty(t, warnings)
}

func TestCompare_SuiteMissingFromBaseline(t *testing.T) {
	current := []ResultSet{
		{Suite: "vulkan_performance", Measurements: []Measurement{{Name: "A", RealTime: 500}}},
	}

	regressions, warnings := Compare(current, nil, 10)

	assert.Empty(t, regressions)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "vulkan_performance")
	assert.Contains(t, warnings[0], "not found in baseline")
}

func TestCompare_BenchmarkMissingFromBaseline(t *testing.T) {
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{
			{Name: "A", RealTime: 200},
			{Name: "B", RealTime: 200},
		}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}

	regressions, warnings := Compare(current, baseline, 10)

	// A regressed and is reported; B only warns.
	require.Len(t, regressions, 1)
	assert.Equal(t, "A", regressions[0].Name)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "B")
}

func TestCompare_ZeroBaselineTime(t *testing.T) {
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A"}}},
	}

	regressions, warnings := Compare(current, baseline, 10)

	assert.Empty(t, regressions)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "zero baseline time")
}

func TestCompare_EmptyCurrent(t *testing.T) {
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 100}}},
	}

	regressions, warnings := Compare(nil, baseline, 10)
	assert.Empty(t, regressions)
	assert.Empty(t, warnings)
}

func TestCompare_DuplicateBaselineNamesFirstMatchWins(t *testing.T) {
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", RealTime: 150}}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{
			{Name: "A", RealTime: 100},
			{Name: "A", RealTime: 150},
		}},
	}

	regressions, _ := Compare(current, baseline, 10)

	require.Len(t, regressions, 1)
	assert.Equal(t, 100.0, regressions[0].BaselineTime)
	assert.InDelta(t, 50.0, regressions[0].DiffPercent, 0.0001)
}

func TestCompare_MeanTimeFallback(t *testing.T) {
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", MeanTime: 130}}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{{Name: "A", MeanTime: 100}}},
	}

	regressions, _ := Compare(current, baseline, 10)

	require.Len(t, regressions, 1)
	assert.InDelta(t, 30.0, regressions[0].DiffPercent, 0.0001)
}

func TestCompare_OutputBoundedByMatchedNames(t *testing.T) {
	current := []ResultSet{
		{Suite: "s", Measurements: []Measurement{
			{Name: "A", RealTime: 1000},
			{Name: "B", RealTime: 1000},
			{Name: "C", RealTime: 1000},
		}},
	}
	baseline := []ResultSet{
		{Suite: "s", Measurements: []Measurement{
			{Name: "A", RealTime: 1},
			{Name: "B", RealTime: 1},
		}},
	}

	regressions, _ := Compare(current, baseline, 10)
	assert.LessOrEqual(t, len(regressions), 2)
}
