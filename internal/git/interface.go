package git

import "context"

// IClient is the subset of git operations needed to move the working tree
// between revisions and identify where it currently points.
type IClient interface {
	CurrentBranch(ctx context.Context, dir string) (string, error)
	CurrentCommitSHA(ctx context.Context, dir string) (string, error)
	Checkout(ctx context.Context, dir, revision string) error
	RepoExists(dir string) bool
}
