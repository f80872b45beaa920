package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
	"spyglass/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct{}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the given targets in an editor. Targets must already be
// validated absolute paths.
// Priority: cliEditor → $SPYGLASS_EDITOR → $VISUAL → $EDITOR → platform defaults
func (o *Opener) Open(targets []domain.EditorTarget, reuseWindow bool, cliEditor string) error {
	if len(targets) == 0 {
		return fmt.Errorf("no path provided")
	}
	for _, t := range targets {
		if _, err := os.Stat(t.Path); err != nil {
			return fmt.Errorf("path does not exist: %w", err)
		}
	}

	editor := findEditor(cliEditor)
	if editor == "" {
		return fmt.Errorf("no suitable editor found. Set --editor flag, $SPYGLASS_EDITOR, $VISUAL, or $EDITOR")
	}

	args := buildArgs(editor, targets, reuseWindow)

	logging.Logger.Info("Opening editor", "editor", editor, "targets", len(targets))

	cmd := exec.Command(editor, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Logger.Warn("Editor exited with error", "error", err, "editor", editor)
		}
	}()

	return nil
}

func findEditor(cliEditor string) string {
	// 1. CLI flag takes precedence
	if cliEditor != "" {
		return cliEditor
	}

	// 2. Check SPYGLASS_EDITOR
	if editor := os.Getenv("SPYGLASS_EDITOR"); editor != "" {
		return editor
	}

	// 3. Check VISUAL
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	// 4. Check EDITOR
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// 5. Platform-specific defaults
	return findPlatformEditor()
}

// buildArgs assembles editor arguments. The VS Code family understands
// --goto path:line and --reuse-window; other editors get bare paths.
func buildArgs(editor string, targets []domain.EditorTarget, reuseWindow bool) []string {
	var args []string

	if isVSCodeFamily(editor) {
		if reuseWindow {
			args = append(args, "--reuse-window")
		}
		for _, t := range targets {
			if t.Line > 0 {
				args = append(args, "--goto", fmt.Sprintf("%s:%d", t.Path, t.Line))
			} else {
				args = append(args, t.Path)
			}
		}
		return args
	}

	for _, t := range targets {
		args = append(args, t.Path)
	}
	return args
}

func isVSCodeFamily(editor string) bool {
	base := strings.TrimSuffix(filepath.Base(editor), ".cmd")
	switch base {
	case "code", "code-insiders", "cursor", "codium":
		return true
	}
	return false
}
