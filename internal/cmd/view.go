package cmd

import (
	"fmt"

	"spyglass/internal/logging"
	"spyglass/internal/ports"
)

// ViewCmd renders a single file to HTML and serves it until interrupted
type ViewCmd struct {
	Path  string `arg:"" help:"File to render (relative to the workspace root, or absolute)"`
	Port  int    `help:"Port for the content server (0 picks a free port)" default:"0"`
	Theme string `help:"Color scheme for rendered HTML" enum:"light,dark,auto" default:"auto"`
}

// Run executes the view command
func (v *ViewCmd) Run(cli *CLI) error {
	// Apply Port setting when the flag is at its default
	if v.Port == 0 && cli.settings != nil && cli.settings.Port != nil {
		v.Port = *cli.settings.Port
	}

	if _, err := cli.Container.Server.Start(v.Port); err != nil {
		return err
	}

	opts := ports.RenderOptions{
		OutputFormat: "line-by-line",
		ColorScheme:  v.Theme,
		Highlight:    true,
	}

	url, err := cli.Container.ViewService.View(v.Path, opts)
	if err != nil {
		return err
	}

	fmt.Println(url)
	logging.Logger.Info("Serving file view", "path", v.Path, "url", url)

	waitForInterrupt()
	return nil
}
