package cmd

import (
	"os"

	"spyglass/internal/domain"
)

// OpenCmd opens validated workspace files in an editor
type OpenCmd struct {
	Paths       []string `arg:"" help:"Files to open (relative to the workspace root, or absolute)"`
	Line        int      `help:"Line number to jump to (applies to the first file)" short:"l"`
	ReuseWindow bool     `help:"Reuse an existing editor window (VS Code family)"`
	Editor      string   `help:"Editor to use (overrides $SPYGLASS_EDITOR, $VISUAL, $EDITOR)"`
}

// Run executes the open command
func (o *OpenCmd) Run(cli *CLI) error {
	// Apply Editor setting with proper precedence
	if o.Editor == "" {
		if _, hasEnv := os.LookupEnv("SPYGLASS_EDITOR"); !hasEnv {
			if cli.settings != nil && cli.settings.Editor != "" {
				o.Editor = cli.settings.Editor
			}
		}
	}

	targets := make([]domain.EditorTarget, 0, len(o.Paths))
	for i, p := range o.Paths {
		abs, err := cli.Container.ViewService.Resolve(p, true)
		if err != nil {
			return err
		}
		t := domain.EditorTarget{Path: abs}
		if i == 0 {
			t.Line = o.Line
		}
		targets = append(targets, t)
	}

	return cli.Container.Opener.Open(targets, o.ReuseWindow, o.Editor)
}
