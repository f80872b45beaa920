package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"spyglass/internal/config"
	"spyglass/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	Workspace   string           `help:"Workspace root for path validation (defaults to current directory)"`

	Diff DiffCmd `cmd:"" help:"Render a git diff to HTML and serve it on a local URL (default)" default:"1"`
	View ViewCmd `cmd:"" help:"Render a file to HTML and serve it on a local URL"`
	Open OpenCmd `cmd:"" help:"Open a workspace file in an editor"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		if c.MaxLogFiles == 1000 {
			if _, hasEnv := os.LookupEnv("SPYGLASS_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("SPYGLASS_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}

		if c.Workspace == "" {
			if _, hasEnv := os.LookupEnv("SPYGLASS_WORKSPACE"); !hasEnv {
				if c.settings.Workspace != "" {
					c.Workspace = c.settings.Workspace
				}
			}
		}
	}
	if c.Workspace == "" {
		c.Workspace = os.Getenv("SPYGLASS_WORKSPACE")
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes
	// inherit debug settings and use the SAME log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("SPYGLASS_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("SPYGLASS_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("SPYGLASS_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized
	container, err := NewContainer(c.settings, c.Workspace)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

// waitForInterrupt blocks until the process receives SIGINT or SIGTERM.
// Serving commands call this after printing the content URL; content lives
// only as long as the process.
func waitForInterrupt() {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-done
	logging.Logger.Info("Shutting down")
}
