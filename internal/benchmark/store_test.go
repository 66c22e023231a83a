package benchmark

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline", "results.json")
	store := NewSnapshotStore(path)

	// Load on a missing file is not an error.
	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)

	in := Snapshot{
		Revision:  "main",
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Suites:    []string{"compute_shader=./compute_shader_benchmark"},
		Sets: []ResultSet{
			{Suite: "compute_shader", Measurements: []Measurement{
				{Name: "BM_GridUpdate", RealTime: 1234.5},
			}},
		},
	}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "main", out.Revision)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
	assert.Equal(t, in.Suites, out.Suites)
	require.Len(t, out.Sets, 1)
	assert.Equal(t, in.Sets[0], out.Sets[0])
}

func TestSnapshotStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))

	_, err := NewSnapshotStore(path).Load()
	assert.Error(t, err)
}
