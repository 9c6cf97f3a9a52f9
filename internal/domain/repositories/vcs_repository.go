package repositories

import (
	"context"
)

// CommitInput describes the branch and commit recorded for generated files.
type CommitInput struct {
	Branch      string
	Message     string
	AuthorName  string
	AuthorEmail string
	// Paths are project-relative files or directories to stage. Empty
	// means stage everything.
	Paths []string
}

// VCSRepository records migration results in the project's local version
// control.
type VCSRepository interface {
	// IsRepository reports whether the directory is inside a git
	// repository.
	IsRepository(dir string) bool

	// CommitGenerated creates the branch (from HEAD), stages the given
	// paths and commits them. It returns the commit hash.
	CommitGenerated(ctx context.Context, dir string, input CommitInput) (string, error)
}
