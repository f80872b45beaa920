package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
)

// buildDiffArgs maps a DiffRequest onto a git argument array. Arguments are
// always passed as an array, never a shell string, and refs and paths are
// validated before they reach the command line.
func buildDiffArgs(req domain.DiffRequest) ([]string, error) {
	var args []string

	switch req.Type {
	case domain.DiffStaged:
		args = []string{"diff", "--cached"}
	case domain.DiffUnstaged, "":
		args = []string{"diff"}
	case domain.DiffCommit:
		target := req.Target
		if target == "" {
			target = "HEAD"
		}
		if err := validateRef(target); err != nil {
			return nil, err
		}
		args = []string{"diff", target + "~1", target}
	case domain.DiffCommitRange:
		if req.Base == "" || req.Target == "" {
			return nil, domain.NewGitError(domain.CodeInvalidTarget,
				"a commit range requires both base and target refs", nil)
		}
		if err := validateRef(req.Base); err != nil {
			return nil, err
		}
		if err := validateRef(req.Target); err != nil {
			return nil, err
		}
		args = []string{"diff", req.Base + ".." + req.Target}
	case domain.DiffBranch:
		target := req.Target
		if target == "" {
			target = "main"
		}
		if err := validateRef(target); err != nil {
			return nil, err
		}
		// Three dots: changes on HEAD since it diverged from target
		args = []string{"diff", target + "...HEAD"}
	default:
		return nil, domain.NewGitError(domain.CodeDiffCommandError,
			fmt.Sprintf("unknown diff type %q", req.Type), nil)
	}

	if req.ContextLines != nil {
		args = append(args, fmt.Sprintf("-U%d", *req.ContextLines))
	}
	if req.IgnoreWhitespace {
		args = append(args, "--ignore-all-space")
	}
	args = append(args, "--no-prefix")

	if len(req.Paths) > 0 {
		cleaned, err := validateDiffPaths(req.Paths)
		if err != nil {
			return nil, err
		}
		args = append(args, "--")
		args = append(args, cleaned...)
	}

	return args, nil
}

// statsArgs derives the numstat variant of a diff argument array: the same
// refs, filters, and paths, with --no-prefix swapped for --numstat --summary
func statsArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	for _, a := range args {
		if a == "--no-prefix" {
			out = append(out, "--numstat", "--summary")
			continue
		}
		out = append(out, a)
	}
	return out
}

// validateDiffPaths rejects adversarial path filters before they are passed
// to git. Separators are normalized to forward slashes for cross-platform
// consistency.
func validateDiffPaths(paths []string) ([]string, error) {
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			return nil, domain.NewGitError(domain.CodeEmptyPath,
				"empty path filter", nil)
		}
		if strings.ContainsRune(p, 0) {
			return nil, domain.NewGitError(domain.CodeUnsafePath,
				fmt.Sprintf("path filter %q contains a null byte", p), nil)
		}
		if strings.Contains(p, "..") {
			return nil, domain.NewGitError(domain.CodeUnsafePath,
				fmt.Sprintf("path filter %q contains a parent-directory reference", p), nil)
		}
		if strings.HasPrefix(p, "-") {
			return nil, domain.NewGitError(domain.CodeUnsafePath,
				fmt.Sprintf("path filter %q would be interpreted as a flag", p), nil)
		}
		cleaned = append(cleaned, filepath.ToSlash(p))
	}
	return cleaned, nil
}

// validateRef rejects refs that git would interpret as options
func validateRef(ref string) error {
	if strings.HasPrefix(ref, "-") || strings.ContainsRune(ref, 0) {
		return domain.NewGitError(domain.CodeInvalidTarget,
			fmt.Sprintf("invalid ref %q", ref), nil)
	}
	return nil
}

// generateDiff runs the full-hunk diff and the numstat variant concurrently,
// then assembles a DiffResult. numstat is the authoritative source for
// per-file and total counts; the raw body feeds rendering, status
// refinement, and chunk parsing.
func generateDiff(ctx context.Context, repo *domain.Repository, req domain.DiffRequest) (*domain.DiffResult, error) {
	args, err := buildDiffArgs(req)
	if err != nil {
		return nil, err
	}

	logging.Logger.Debug("Generating diff",
		"repo", repo.GitRoot,
		"type", req.Type,
		"args", strings.Join(args, " "))

	var rawOut, statsOut string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, stderr, err := runGit(gctx, repo.GitRoot, diffTimeout, args...)
		if err != nil {
			return classifyDiffError(stderr, err)
		}
		rawOut = out
		return nil
	})
	g.Go(func() error {
		out, stderr, err := runGit(gctx, repo.GitRoot, diffTimeout, statsArgs(args)...)
		if err != nil {
			return classifyDiffError(stderr, err)
		}
		statsOut = out
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files, totals := parseNumstat(statsOut)
	refineStatuses(files, rawOut)

	diffType := req.Type
	if diffType == "" {
		diffType = domain.DiffUnstaged
	}

	result := &domain.DiffResult{
		Repository: *repo,
		Type:       diffType,
		Target:     req.Target,
		Files:      files,
		Stats:      totals,
		Raw:        rawOut,
	}

	logging.Logger.Debug("Diff generated",
		"files", totals.FilesChanged,
		"additions", totals.Additions,
		"deletions", totals.Deletions,
		"raw_bytes", len(rawOut))

	return result, nil
}

// classifyDiffError maps git failures to typed errors by inspecting stderr
func classifyDiffError(stderr string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewGitError(domain.CodeTimeout,
			"git diff timed out after 30s", err)
	}
	if errors.Is(err, errOutputLimit) {
		return domain.NewGitError(domain.CodeDiffCommandError,
			"git diff output exceeded the 10MB limit", err)
	}

	low := strings.ToLower(stderr)
	switch {
	case strings.Contains(low, "bad revision"):
		return domain.NewGitError(domain.CodeInvalidTarget,
			strings.TrimSpace(stderr), err)
	case strings.Contains(low, "ambiguous argument"):
		return domain.NewGitError(domain.CodeAmbiguousTarget,
			strings.TrimSpace(stderr), err)
	default:
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = "git diff failed"
		}
		return domain.NewGitError(domain.CodeDiffCommandError, msg, err)
	}
}
