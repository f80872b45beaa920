package cmd

import (
	"fmt"
	"os"
	"time"

	"spyglass/internal/adapters/editor"
	"spyglass/internal/adapters/git"
	"spyglass/internal/adapters/render"
	"spyglass/internal/config"
	"spyglass/internal/ports"
	"spyglass/internal/server"
	"spyglass/internal/services"
	"spyglass/internal/workspace"
)

// Container wires adapters and services together. Commands reach everything
// through it instead of constructing adapters themselves.
type Container struct {
	Settings *config.Settings
	Resolver *workspace.Resolver
	GitRepo  ports.GitRepository
	Renderer ports.DiffRenderer
	Opener   ports.EditorOpener
	Server   *server.ContentServer

	DiffService *services.DiffService
	ViewService *services.ViewService
}

// NewContainer builds the dependency graph. workspaceRoot comes from the
// --workspace flag (already merged with env and settings); empty means the
// current directory.
func NewContainer(settings *config.Settings, workspaceRoot string) (*Container, error) {
	if settings == nil {
		settings = &config.Settings{}
	}

	root := workspaceRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		root = cwd
	}

	// Absolute paths bypass workspace confinement unless settings disable it
	allowAbsolute := true
	if settings.AllowAbsolutePaths != nil {
		allowAbsolute = *settings.AllowAbsolutePaths
	}

	resolver, err := workspace.NewResolver(root, allowAbsolute)
	if err != nil {
		return nil, err
	}

	var serverOpts []server.Option
	if settings.ArtifactTTLMinutes != nil {
		serverOpts = append(serverOpts, server.WithTTL(time.Duration(*settings.ArtifactTTLMinutes)*time.Minute))
	}
	if settings.SweepIntervalMinutes != nil {
		serverOpts = append(serverOpts, server.WithSweepInterval(time.Duration(*settings.SweepIntervalMinutes)*time.Minute))
	}

	gitRepo := git.NewCLIRepository()
	renderer := render.NewHTMLRenderer()
	srv := server.NewContentServer(serverOpts...)

	return &Container{
		Settings:    settings,
		Resolver:    resolver,
		GitRepo:     gitRepo,
		Renderer:    renderer,
		Opener:      editor.NewOpener(),
		Server:      srv,
		DiffService: services.NewDiffService(gitRepo, renderer, srv),
		ViewService: services.NewViewService(resolver, renderer, srv),
	}, nil
}

// Close releases container resources
func (c *Container) Close() error {
	if c.Server != nil {
		c.Server.Dispose()
	}
	return nil
}
