package benchmark

import "fmt"

// Compare matches current measurements against the baseline by suite and
// benchmark name and returns the benchmarks that regressed past the
// threshold (expressed in percent, e.g. 10 means "more than 10% slower").
//
// Faster benchmarks and those within the threshold produce no record: the
// output is exactly the regressions, in current-run order. Mismatches
// (suite or benchmark missing from the baseline, zero baseline time) are
// returned as warnings and the affected item is skipped.
func Compare(current, baseline []ResultSet, threshold float64) ([]Regression, []string) {
	baseSuites := make(map[string]map[string]Measurement, len(baseline))
	for _, set := range baseline {
		byName := make(map[string]Measurement, len(set.Measurements))
		for _, m := range set.Measurements {
			// First match wins on duplicate names.
			if _, ok := byName[m.Name]; !ok {
				byName[m.Name] = m
			}
		}
		baseSuites[set.Suite] = byName
	}

	var regressions []Regression
	var warnings []string

	for _, set := range current {
		baseSet, ok := baseSuites[set.Suite]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("suite %s not found in baseline", set.Suite))
			continue
		}

		for _, cur := range set.Measurements {
			base, ok := baseSet[cur.Name]
			if !ok {
				warnings = append(warnings, fmt.Sprintf("benchmark %s not found in baseline suite %s", cur.Name, set.Suite))
				continue
			}

			baseTime := base.Time()
			if baseTime == 0 {
				warnings = append(warnings, fmt.Sprintf("benchmark %s in suite %s has a zero baseline time", cur.Name, set.Suite))
				continue
			}

			curTime := cur.Time()
			diffPercent := (curTime - baseTime) / baseTime * 100

			if diffPercent > threshold {
				regressions = append(regressions, Regression{
					Name:         cur.Name,
					Suite:        set.Suite,
					CurrentTime:  curTime,
					BaselineTime: baseTime,
					DiffPercent:  diffPercent,
				})
			}
		}
	}

	return regressions, warnings
}
