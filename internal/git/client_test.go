package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	runGit := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v\n%s", args, err, out)
		}
	}

	runGit("init", "-b", "main")
	runGit("config", "user.email", "test@example.com")
	runGit("config", "user.name", "Test User")

	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("v1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runGit("add", "file.txt")
	runGit("commit", "-m", "initial")

	return dir
}

func TestClient_CurrentBranch(t *testing.T) {
	dir := setupTestRepo(t)
	client := NewClient()
	ctx := context.Background()

	branch, err := client.CurrentBranch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestClient_CurrentBranch_DetachedHead(t *testing.T) {
	dir := setupTestRepo(t)
	client := NewClient()
	ctx := context.Background()

	sha, err := client.CurrentCommitSHA(ctx, dir)
	require.NoError(t, err)
	require.NotEmpty(t, sha)

	require.NoError(t, client.Checkout(ctx, dir, sha))

	// Detached HEAD should resolve to the commit SHA, not "HEAD".
	branch, err := client.CurrentBranch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, sha, branch)
}

func TestClient_CheckoutRoundTrip(t *testing.T) {
	dir := setupTestRepo(t)
	client := NewClient()
	ctx := context.Background()

	cmd := exec.Command("git", "checkout", "-b", "feature")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	require.NoError(t, client.Checkout(ctx, dir, "main"))
	branch, err := client.CurrentBranch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	require.NoError(t, client.Checkout(ctx, dir, "feature"))
	branch, err = client.CurrentBranch(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "feature", branch)
}

func TestClient_Checkout_UnknownRevision(t *testing.T) {
	dir := setupTestRepo(t)
	client := NewClient()

	err := client.Checkout(context.Background(), dir, "no-such-branch")
	assert.Error(t, err)
}

func TestClient_RepoExists(t *testing.T) {
	dir := setupTestRepo(t)
	client := NewClient()

	assert.True(t, client.RepoExists(dir))
	assert.False(t, client.RepoExists(t.TempDir()))
}
