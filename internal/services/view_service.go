package services

import (
	"fmt"
	"os"
	"path/filepath"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
	"spyglass/internal/ports"
	"spyglass/internal/workspace"
)

// maxViewFileBytes caps how much file content a single view request reads
const maxViewFileBytes = 10 << 20

// ViewService resolves a workspace path, renders the file content to HTML,
// and publishes it on the content server
type ViewService struct {
	resolver *workspace.Resolver
	renderer ports.DiffRenderer
	store    ports.ArtifactStore
}

// NewViewService creates a new ViewService
func NewViewService(resolver *workspace.Resolver, renderer ports.DiffRenderer, store ports.ArtifactStore) *ViewService {
	return &ViewService{
		resolver: resolver,
		renderer: renderer,
		store:    store,
	}
}

// View validates inputPath, reads the file, renders it, and returns the URL
// where the rendered content can be fetched
func (s *ViewService) View(inputPath string, opts ports.RenderOptions) (string, error) {
	abs, err := s.resolver.Resolve(inputPath, true)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &domain.Error{
			Category: domain.CategoryValidation,
			Code:     domain.CodeNotAccessible,
			Message:  fmt.Sprintf("cannot stat %q", abs),
			Cause:    err,
		}
	}
	if info.IsDir() {
		return "", domain.NewValidationError(domain.CodeNotAccessible,
			fmt.Sprintf("%q is a directory, not a file", abs))
	}
	if info.Size() > maxViewFileBytes {
		return "", domain.NewValidationError(domain.CodeNotAccessible,
			fmt.Sprintf("%q exceeds the 10MB view limit", abs))
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return "", &domain.Error{
			Category: domain.CategoryValidation,
			Code:     domain.CodeNotAccessible,
			Message:  fmt.Sprintf("failed to read %q", abs),
			Cause:    err,
		}
	}

	filename := filepath.Base(abs)
	html, err := s.renderer.RenderFile(string(content), filename, opts)
	if err != nil {
		return "", err
	}

	put, err := s.store.Put(html, filename+".html")
	if err != nil {
		return "", err
	}

	logging.Logger.Info("File published", "id", put.ID, "path", abs, "url", put.URL)

	return put.URL, nil
}

// Resolve exposes path validation without reading content, for callers that
// only need the absolute path (such as the editor opener)
func (s *ViewService) Resolve(inputPath string, checkAccess bool) (string, error) {
	return s.resolver.Resolve(inputPath, checkAccess)
}
