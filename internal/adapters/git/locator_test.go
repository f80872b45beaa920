package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/domain"
)

// gitEnv pins author identity so commits work on machines without a global
// git config
var gitEnv = []string{
	"GIT_AUTHOR_NAME=Test User",
	"GIT_AUTHOR_EMAIL=test@example.com",
	"GIT_COMMITTER_NAME=Test User",
	"GIT_COMMITTER_EMAIL=test@example.com",
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), gitEnv...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return strings.TrimSpace(string(out))
}

// initTestRepo creates a repository with one commit on main
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	runTestGit(t, dir, "init")
	runTestGit(t, dir, "config", "user.name", "Test User")
	runTestGit(t, dir, "config", "user.email", "test@example.com")
	runTestGit(t, dir, "branch", "-M", "main")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("hello\n"), 0644))
	runTestGit(t, dir, "add", ".")
	runTestGit(t, dir, "commit", "-m", "initial commit")

	return dir
}

func TestDetectRepository(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	t.Run("repository root", func(t *testing.T) {
		dir := initTestRepo(t)

		repo, err := detectRepository(ctx, dir)
		require.NoError(t, err)

		// TempDir may be behind a symlink; compare resolved paths
		wantRoot, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		gotRoot, err := filepath.EvalSymlinks(repo.GitRoot)
		require.NoError(t, err)
		assert.Equal(t, wantRoot, gotRoot)

		assert.Equal(t, "main", repo.CurrentBranch)
		assert.False(t, repo.HasRemote)
		assert.Equal(t, dir, repo.WorkingDirectory)
	})

	t.Run("subdirectory resolves to the same root", func(t *testing.T) {
		dir := initTestRepo(t)
		sub := filepath.Join(dir, "nested", "deeper")
		require.NoError(t, os.MkdirAll(sub, 0755))

		repo, err := detectRepository(ctx, sub)
		require.NoError(t, err)

		wantRoot, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)
		gotRoot, err := filepath.EvalSymlinks(repo.GitRoot)
		require.NoError(t, err)
		assert.Equal(t, wantRoot, gotRoot)
	})

	t.Run("detached HEAD reports a detached branch name", func(t *testing.T) {
		dir := initTestRepo(t)
		hash := runTestGit(t, dir, "rev-parse", "HEAD")
		runTestGit(t, dir, "checkout", "--detach", hash)

		repo, err := detectRepository(ctx, dir)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(repo.CurrentBranch, "detached-"))
	})

	t.Run("remote information when configured", func(t *testing.T) {
		dir := initTestRepo(t)
		runTestGit(t, dir, "remote", "add", "origin", "https://example.com/repo.git")

		repo, err := detectRepository(ctx, dir)
		require.NoError(t, err)
		assert.True(t, repo.HasRemote)
		assert.Equal(t, "origin", repo.RemoteName)
		assert.Equal(t, "https://example.com/repo.git", repo.RemoteURL)
	})

	t.Run("directory outside any repository", func(t *testing.T) {
		dir := t.TempDir()

		_, err := detectRepository(ctx, dir)
		assert.Equal(t, domain.CodeNotARepository, domain.CodeOf(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := detectRepository(ctx, filepath.Join(t.TempDir(), "does-not-exist"))
		assert.Equal(t, domain.CodeDirectoryNotFound, domain.CodeOf(err))
	})
}

func TestGenerateDiffEndToEnd(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	dir := initTestRepo(t)
	repo, err := detectRepository(ctx, dir)
	require.NoError(t, err)

	t.Run("staged changes", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"),
			[]byte("hello\nworld\nagain\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"),
			[]byte("fresh\n"), 0644))
		runTestGit(t, dir, "add", ".")

		result, err := generateDiff(ctx, repo, domain.DiffRequest{Type: domain.DiffStaged})
		require.NoError(t, err)

		assert.Equal(t, 2, result.Stats.FilesChanged)
		assert.Equal(t, 3, result.Stats.Additions)
		assert.Equal(t, 0, result.Stats.Deletions)
		assert.NotEmpty(t, result.Raw)

		byPath := map[string]domain.FileDiff{}
		for _, f := range result.Files {
			byPath[f.Path] = f
		}
		assert.Equal(t, domain.StatusAdded, byPath["new.txt"].Status)
		assert.Equal(t, domain.StatusModified, byPath["readme.md"].Status)

		runTestGit(t, dir, "commit", "-m", "second commit")
	})

	t.Run("empty diff when nothing changed", func(t *testing.T) {
		result, err := generateDiff(ctx, repo, domain.DiffRequest{Type: domain.DiffUnstaged})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Stats.FilesChanged)
		assert.Empty(t, result.Raw)
	})

	t.Run("single commit diff", func(t *testing.T) {
		result, err := generateDiff(ctx, repo, domain.DiffRequest{Type: domain.DiffCommit})
		require.NoError(t, err)
		assert.Equal(t, domain.DiffCommit, result.Type)
		assert.Equal(t, 2, result.Stats.FilesChanged)
	})

	t.Run("bogus ref is rejected by git", func(t *testing.T) {
		_, err := generateDiff(ctx, repo, domain.DiffRequest{
			Type:   domain.DiffCommit,
			Target: "bogus-ref-that-does-not-exist",
		})
		require.Error(t, err)
		code := domain.CodeOf(err)
		assert.Contains(t, []string{domain.CodeInvalidTarget, domain.CodeAmbiguousTarget}, code)
	})

	t.Run("path filter narrows the diff", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"),
			[]byte("changed\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"),
			[]byte("also changed\n"), 0644))

		result, err := generateDiff(ctx, repo, domain.DiffRequest{
			Type:  domain.DiffUnstaged,
			Paths: []string{"readme.md"},
		})
		require.NoError(t, err)
		require.Equal(t, 1, result.Stats.FilesChanged)
		assert.Equal(t, "readme.md", result.Files[0].Path)
	})

	t.Run("staged single file with three additions and one deletion", func(t *testing.T) {
		// HEAD has readme.md as hello/world/again; drop the last line and
		// add three new ones
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"),
			[]byte("hello\nworld\nalpha\nbeta\ngamma\n"), 0644))
		runTestGit(t, dir, "add", "readme.md")

		result, err := generateDiff(ctx, repo, domain.DiffRequest{Type: domain.DiffStaged})
		require.NoError(t, err)

		assert.Equal(t, domain.DiffStaged, result.Type)
		assert.Equal(t, domain.DiffTotals{FilesChanged: 1, Additions: 3, Deletions: 1}, result.Stats)
	})
}
