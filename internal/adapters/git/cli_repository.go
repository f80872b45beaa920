package git

import (
	"context"

	"spyglass/internal/domain"
	"spyglass/internal/ports"
)

// CLIRepository implements the git port by shelling out to the git binary
type CLIRepository struct{}

var _ ports.GitRepository = (*CLIRepository)(nil)

// NewCLIRepository creates a git adapter backed by the system git binary
func NewCLIRepository() *CLIRepository {
	return &CLIRepository{}
}

// Detect determines whether path is inside a git repository
func (r *CLIRepository) Detect(ctx context.Context, path string) (*domain.Repository, error) {
	return detectRepository(ctx, path)
}

// GenerateDiff builds and runs the diff invocations for repo
func (r *CLIRepository) GenerateDiff(ctx context.Context, repo *domain.Repository, req domain.DiffRequest) (*domain.DiffResult, error) {
	return generateDiff(ctx, repo, req)
}
