package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"spyglass/internal/domain"
	"spyglass/internal/ports"
)

// DiffCmd generates a git diff, renders it to HTML, and serves it until
// interrupted. --stat prints a terminal summary instead of serving.
type DiffCmd struct {
	Staged   bool   `help:"Diff staged changes (index vs HEAD)" xor:"mode"`
	Unstaged bool   `help:"Diff unstaged changes (working tree vs index)" xor:"mode"`
	Commit   string `help:"Diff a single commit against its parent" xor:"mode"`
	Range    string `help:"Diff a commit range (base..target)" xor:"mode"`
	Branch   string `help:"Diff HEAD against where it diverged from a base branch" xor:"mode"`

	Path             []string `help:"Limit the diff to specific paths" name:"path"`
	Context          *int     `help:"Lines of context around changes"`
	IgnoreWhitespace bool     `help:"Ignore all whitespace changes"`

	Stat  bool   `help:"Print a summary to the terminal instead of serving HTML"`
	Keep  bool   `help:"With --stat, also serve the HTML view until interrupted"`
	Port  int    `help:"Port for the content server (0 picks a free port)" default:"0"`
	Theme string `help:"Color scheme for rendered HTML" enum:"light,dark,auto" default:"auto"`
	Dir   string `help:"Directory inside the repository" default:"."`
}

// Run executes the diff command
func (d *DiffCmd) Run(cli *CLI) error {
	req, err := d.buildRequest(cli)
	if err != nil {
		return err
	}

	result, err := cli.Container.DiffService.Generate(context.Background(), d.Dir, req)
	if err != nil {
		return err
	}

	if d.Stat {
		printStatSummary(result)
		if !d.Keep {
			return nil
		}
	}

	if d.Port == 0 && cli.settings != nil && cli.settings.Port != nil {
		d.Port = *cli.settings.Port
	}
	if _, err := cli.Container.Server.Start(d.Port); err != nil {
		return err
	}

	opts := ports.RenderOptions{
		OutputFormat: "line-by-line",
		ColorScheme:  d.Theme,
		DrawFileList: true,
		Highlight:    true,
	}

	url, err := cli.Container.DiffService.Publish(result, opts)
	if err != nil {
		return err
	}

	fmt.Println(url)

	waitForInterrupt()
	return nil
}

// buildRequest maps the mutually exclusive mode flags onto a DiffRequest
func (d *DiffCmd) buildRequest(cli *CLI) (domain.DiffRequest, error) {
	req := domain.DiffRequest{
		Type:             domain.DiffUnstaged,
		Paths:            d.Path,
		ContextLines:     d.Context,
		IgnoreWhitespace: d.IgnoreWhitespace,
	}

	switch {
	case d.Staged:
		req.Type = domain.DiffStaged
	case d.Commit != "":
		req.Type = domain.DiffCommit
		req.Target = d.Commit
	case d.Range != "":
		base, target, ok := strings.Cut(d.Range, "..")
		if !ok || base == "" || target == "" {
			return req, domain.NewGitError(domain.CodeInvalidTarget,
				fmt.Sprintf("range %q is not of the form base..target", d.Range), nil)
		}
		req.Type = domain.DiffCommitRange
		req.Base = base
		req.Target = strings.TrimPrefix(target, ".")
	case d.Branch != "":
		req.Type = domain.DiffBranch
		req.Target = d.Branch
	}

	// Apply ContextLines setting when the flag is absent
	if req.ContextLines == nil && cli.settings != nil && cli.settings.ContextLines != nil {
		req.ContextLines = cli.settings.ContextLines
	}

	return req, nil
}

var (
	statFileStyle  = lipgloss.NewStyle().Bold(true)
	statAddStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statDelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statTotalStyle = lipgloss.NewStyle().Faint(true)
)

// printStatSummary writes a per-file change summary to stdout
func printStatSummary(result *domain.DiffResult) {
	for _, f := range result.Files {
		label := f.Path
		if f.Status == domain.StatusRenamed && f.OldPath != "" {
			label = f.OldPath + " -> " + f.Path
		}
		fmt.Fprintf(os.Stdout, "%s  %s %s  (%s)\n",
			statFileStyle.Render(label),
			statAddStyle.Render(fmt.Sprintf("+%d", f.Additions)),
			statDelStyle.Render(fmt.Sprintf("-%d", f.Deletions)),
			f.Status)
	}
	fmt.Fprintln(os.Stdout, statTotalStyle.Render(fmt.Sprintf(
		"%d files changed, %d insertions(+), %d deletions(-)",
		result.Stats.FilesChanged, result.Stats.Additions, result.Stats.Deletions)))
}
