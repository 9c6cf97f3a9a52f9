package gitlocal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// GitVCSRepository records migration results in the local git repository.
type GitVCSRepository struct{}

var _ domainRepos.VCSRepository = (*GitVCSRepository)(nil)

// NewVCSRepository creates a new GitVCSRepository.
func NewVCSRepository() *GitVCSRepository {
	return &GitVCSRepository{}
}

// IsRepository reports whether dir is inside a git repository.
func (it *GitVCSRepository) IsRepository(dir string) bool {
	_, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// CommitGenerated creates the branch from HEAD, stages the given paths and
// commits them.
func (it *GitVCSRepository) CommitGenerated(
	ctx context.Context,
	dir string,
	input domainRepos.CommitInput,
) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository at %q: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	branchRef := plumbing.NewBranchReferenceName(input.Branch)
	if checkoutErr := worktree.Checkout(&git.CheckoutOptions{
		Branch: branchRef,
		Create: true,
		Keep:   true,
	}); checkoutErr != nil {
		return "", fmt.Errorf("failed to create branch %q: %w", input.Branch, checkoutErr)
	}

	if len(input.Paths) == 0 {
		if addErr := worktree.AddGlob("."); addErr != nil {
			return "", fmt.Errorf("failed to stage changes: %w", addErr)
		}
	} else {
		for _, p := range input.Paths {
			if _, addErr := worktree.Add(p); addErr != nil {
				return "", fmt.Errorf("failed to stage %q: %w", p, addErr)
			}
		}
	}

	hash, err := worktree.Commit(input.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  input.AuthorName,
			Email: input.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	logger.Infof("[git] Committed %s on branch %s", hash.String()[:8], input.Branch)
	return hash.String(), nil
}
