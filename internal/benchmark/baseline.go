package benchmark

import (
	"context"
	"fmt"
	"slices"
	"time"

	"perfgate/internal/buildsys"
	"perfgate/internal/git"
)

// suiteKey is the cache identity of a suite set: sorted name=path pairs.
func suiteKey(specs []SuiteSpec) []string {
	if len(specs) == 0 {
		return nil
	}
	key := make([]string, 0, len(specs))
	for _, s := range specs {
		key = append(key, s.Name+"="+s.Path)
	}
	slices.Sort(key)
	return key
}

// BaselineFetcher measures the baseline revision under the same environment
// as the current run: it checks out the requested revision, rebuilds, runs
// the same acquisition, and always restores the original revision before
// returning. Results are cached in Store keyed by revision and suite set.
type BaselineFetcher struct {
	Git     git.IClient
	Builder buildsys.Builder
	Runner  Runner
	Store   *SnapshotStore
	// Dir is the repository working tree.
	Dir string
}

// Fetch returns the baseline result sets for revision. When refresh is false
// and the snapshot cache was written for the same revision and suite set,
// the cached sets are returned without touching the working tree.
func (f *BaselineFetcher) Fetch(ctx context.Context, revision string, specs []SuiteSpec, refresh bool) (sets []ResultSet, warnings []string, err error) {
	suites := suiteKey(specs)
	if !refresh && f.Store != nil {
		snap, loadErr := f.Store.Load()
		switch {
		case loadErr != nil:
			warnings = append(warnings, fmt.Sprintf("ignoring unreadable baseline snapshot: %v", loadErr))
		case snap != nil && snap.Revision != revision:
			warnings = append(warnings, fmt.Sprintf("baseline snapshot is for revision %s, re-measuring %s", snap.Revision, revision))
		case snap != nil && !slices.Equal(snap.Suites, suites):
			warnings = append(warnings, fmt.Sprintf("baseline snapshot covers a different suite set, re-measuring %s", revision))
		case snap != nil:
			return snap.Sets, warnings, nil
		}
	}

	original, err := f.Git.CurrentBranch(ctx, f.Dir)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to record current revision: %w", err)
	}

	if err = f.Git.Checkout(ctx, f.Dir, revision); err != nil {
		return nil, warnings, fmt.Errorf("failed to checkout baseline %s: %w", revision, err)
	}

	// The working tree now belongs to this fetch. Whatever happens below,
	// the original revision is restored before anyone else observes it.
	defer func() {
		restoreCtx := context.WithoutCancel(ctx)
		if restoreErr := f.Git.Checkout(restoreCtx, f.Dir, original); restoreErr != nil {
			if err != nil {
				err = fmt.Errorf("%w (additionally failed to restore revision %s: %v)", err, original, restoreErr)
			} else {
				sets = nil
				err = fmt.Errorf("failed to restore original revision %s: %w", original, restoreErr)
			}
		}
	}()

	if err = f.Builder.Build(ctx); err != nil {
		return nil, warnings, fmt.Errorf("baseline %s: %w", revision, err)
	}

	sets, runWarnings, runErr := f.Runner.Run(ctx, specs)
	warnings = append(warnings, runWarnings...)
	if runErr != nil {
		err = fmt.Errorf("baseline %s: %w", revision, runErr)
		return nil, warnings, err
	}

	if f.Store != nil {
		snap := Snapshot{Revision: revision, Timestamp: time.Now(), Suites: suites, Sets: sets}
		if saveErr := f.Store.Save(snap); saveErr != nil {
			// A broken cache costs a rebuild next time, nothing more.
			warnings = append(warnings, fmt.Sprintf("failed to cache baseline results: %v", saveErr))
		}
	}

	return sets, warnings, nil
}
