//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
type SpyVCSRepository struct {
	// --- IsRepository ---
	IsRepo bool

	// --- CommitGenerated ---
	Hash      string
	CommitErr error
	// spy: inputs received
	CommitInputs []repositories.CommitInput
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (v *SpyVCSRepository) IsRepository(_ string) bool { return v.IsRepo }

func (v *SpyVCSRepository) CommitGenerated(
	_ context.Context, _ string, input repositories.CommitInput,
) (string, error) {
	v.CommitInputs = append(v.CommitInputs, input)
	if v.CommitErr != nil {
		return "", v.CommitErr
	}
	if v.Hash != "" {
		return v.Hash, nil
	}
	return "deadbeef", nil
}
