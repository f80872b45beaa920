package ports

import (
	"context"

	"spyglass/internal/domain"
)

// RepositoryLocator detects whether a directory is inside a git repository
// and extracts root, branch, and remote information
type RepositoryLocator interface {
	Detect(ctx context.Context, path string) (*domain.Repository, error)
}

// DiffGenerator builds and runs the diff subprocess invocations for a
// repository and returns a structured result
type DiffGenerator interface {
	GenerateDiff(ctx context.Context, repo *domain.Repository, req domain.DiffRequest) (*domain.DiffResult, error)
}

// GitRepository is the composite interface
type GitRepository interface {
	DiffGenerator
	RepositoryLocator
}
