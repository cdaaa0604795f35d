package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codenerd-labs/revcrew/internal/review"
)

// initRepo builds a throwaway git repository with one committed file
// and one uncommitted modification, so ChangedFiles has something to
// report against HEAD.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoErrorf(t, err, "git %v: %s", args, out)
	}

	run("init")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.go"), []byte("package greet\n\nfunc Hello() string {\n\treturn \"hi\"\n}\n"), 0o644))
	run("add", "greet.go")
	run("commit", "-m", "initial")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "greet.go"), []byte("package greet\n\nfunc Hello(name string) string {\n\treturn \"hi \" + name\n}\n"), 0o644))

	return dir
}

func TestGitCollaborator_ChangedFiles(t *testing.T) {
	dir := initRepo(t)
	gc := GitCollaborator{Dir: dir}

	files, err := gc.ChangedFiles(context.Background(), "HEAD")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.Equal(t, "greet.go", files[0].FilePath)
	require.Equal(t, review.ChangeModified, files[0].ChangeType)
	require.Contains(t, files[0].Diff, "+func Hello(name string) string {")
}

func TestGitCollaborator_ContextWindow(t *testing.T) {
	dir := initRepo(t)
	gc := GitCollaborator{Dir: dir}

	window, err := gc.ContextWindow(context.Background(), "greet.go", 3)
	require.NoError(t, err)
	require.Contains(t, window, "func Hello")
}
