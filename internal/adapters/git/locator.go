package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"spyglass/internal/domain"
	"spyglass/internal/logging"
)

// detachedHeadSentinel is what rev-parse --abbrev-ref prints when HEAD does
// not point at a branch
const detachedHeadSentinel = "HEAD"

// detectRepository determines whether path is inside a git repository and
// extracts root, current branch, and remote information. The Repository is
// built fresh on every call; branch and remotes may change between requests.
func detectRepository(ctx context.Context, path string) (*domain.Repository, error) {
	logging.Logger.Debug("Detecting repository", "path", path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewGitError(domain.CodeDirectoryNotFound,
				fmt.Sprintf("directory does not exist: %s", path), err)
		}
		return nil, domain.NewGitError(domain.CodeRootLookupFailed,
			fmt.Sprintf("cannot access directory: %s", path), err)
	}

	out, stderr, err := runGit(ctx, path, locateTimeout, "rev-parse", "--show-toplevel")
	if err != nil {
		low := strings.ToLower(stderr)
		switch {
		case strings.Contains(low, "not a git repository"):
			return nil, domain.NewGitError(domain.CodeNotARepository,
				fmt.Sprintf("%s is not inside a git repository", path), err)
		case strings.Contains(low, "no such file or directory"):
			return nil, domain.NewGitError(domain.CodeDirectoryNotFound,
				fmt.Sprintf("directory does not exist: %s", path), err)
		default:
			return nil, domain.NewGitError(domain.CodeRootLookupFailed,
				"failed to determine repository root", err)
		}
	}
	gitRoot := strings.TrimSpace(out)

	branch, err := currentBranch(ctx, gitRoot)
	if err != nil {
		return nil, err
	}

	repo := &domain.Repository{
		GitRoot:          gitRoot,
		CurrentBranch:    branch,
		WorkingDirectory: path,
	}

	// No configured remote is not an error; degrade to HasRemote=false
	name, url, ok := firstRemote(ctx, gitRoot)
	if ok {
		repo.HasRemote = true
		repo.RemoteName = name
		repo.RemoteURL = url
	}

	logging.Logger.Debug("Repository detected",
		"root", repo.GitRoot,
		"branch", repo.CurrentBranch,
		"has_remote", repo.HasRemote)

	return repo, nil
}

// currentBranch returns the checked-out branch name, or detached-<hash>
// when HEAD does not point at a branch
func currentBranch(ctx context.Context, gitRoot string) (string, error) {
	out, _, err := runGit(ctx, gitRoot, locateTimeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", domain.NewGitError(domain.CodeBranchLookupFailed,
			"failed to determine current branch", err)
	}

	branch := strings.TrimSpace(out)
	if branch != detachedHeadSentinel {
		return branch, nil
	}

	out, _, err = runGit(ctx, gitRoot, locateTimeout, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", domain.NewGitError(domain.CodeBranchLookupFailed,
			"failed to resolve detached HEAD commit", err)
	}
	return "detached-" + strings.TrimSpace(out), nil
}

// firstRemote returns the name and URL of the first configured remote
func firstRemote(ctx context.Context, gitRoot string) (name, url string, ok bool) {
	out, _, err := runGit(ctx, gitRoot, locateTimeout, "remote")
	if err != nil {
		logging.Logger.Debug("Failed to list remotes", "error", err)
		return "", "", false
	}

	remotes := strings.Fields(strings.TrimSpace(out))
	if len(remotes) == 0 {
		return "", "", false
	}
	name = remotes[0]

	out, _, err = runGit(ctx, gitRoot, locateTimeout, "remote", "get-url", name)
	if err != nil {
		// Remote exists but its URL cannot be read; keep the name
		logging.Logger.Debug("Failed to get remote URL", "remote", name, "error", err)
		return name, "", true
	}
	return name, strings.TrimSpace(out), true
}
