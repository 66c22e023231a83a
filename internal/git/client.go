package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Client handles git interactions via the git binary.
type Client struct{}

// NewClient creates a new Git client.
func NewClient() *Client {
	return &Client{}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	// Enforce no prompting
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_ASKPASS=/bin/true")

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\nStderr: %s", args[0], err, errBuf.String())
	}
	return strings.TrimSpace(outBuf.String()), nil
}

// CurrentBranch returns the name of the checked-out branch. On a detached
// HEAD it falls back to the commit SHA so the caller always gets a revision
// it can check out again.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	branch, err := c.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if branch == "HEAD" {
		return c.CurrentCommitSHA(ctx, dir)
	}
	return branch, nil
}

// CurrentCommitSHA returns the full SHA of HEAD.
func (c *Client) CurrentCommitSHA(ctx context.Context, dir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return c.run(ctx, dir, "rev-parse", "HEAD")
}

// Checkout switches the working tree to the given branch, tag or commit.
func (c *Client) Checkout(ctx context.Context, dir, revision string) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	_, err := c.run(ctx, dir, "checkout", revision)
	return err
}

// RepoExists reports whether dir is inside a git working tree.
func (c *Client) RepoExists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}
