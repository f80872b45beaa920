package services

import (
	"context"
	"path/filepath"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
	"spyglass/internal/ports"
)

// DiffService orchestrates a diff request: detect the repository at the
// working directory, generate the diff, render it, and publish the result
type DiffService struct {
	gitRepo  ports.GitRepository
	renderer ports.DiffRenderer
	store    ports.ArtifactStore
}

// NewDiffService creates a new DiffService
func NewDiffService(gitRepo ports.GitRepository, renderer ports.DiffRenderer, store ports.ArtifactStore) *DiffService {
	return &DiffService{
		gitRepo:  gitRepo,
		renderer: renderer,
		store:    store,
	}
}

// Generate detects the repository containing workingDir and produces a
// structured diff for it
func (s *DiffService) Generate(ctx context.Context, workingDir string, req domain.DiffRequest) (*domain.DiffResult, error) {
	repo, err := s.gitRepo.Detect(ctx, workingDir)
	if err != nil {
		return nil, err
	}
	return s.gitRepo.GenerateDiff(ctx, repo, req)
}

// Publish renders a diff result to HTML and stores it, returning the URL
// where it can be viewed
func (s *DiffService) Publish(result *domain.DiffResult, opts ports.RenderOptions) (string, error) {
	html, err := s.renderer.RenderDiff(result.Raw, &result.Repository, opts)
	if err != nil {
		return "", err
	}

	filename := "diff-" + string(result.Type) + ".html"
	if result.Target != "" {
		filename = "diff-" + filepath.Base(result.Target) + ".html"
	}

	put, err := s.store.Put(html, filename)
	if err != nil {
		return "", err
	}

	logging.Logger.Info("Diff published",
		"id", put.ID,
		"files", result.Stats.FilesChanged,
		"url", put.URL)

	return put.URL, nil
}
