// GitCollaborator is revcrew's thin, real implementation of
// Collaborator. Only the contract is specified; a real
// implementation is a convenience default, not a requirement, so it
// stays deliberately minimal — it shells out to the system git binary
// exactly as the teacher's direct-action commands do, rather than
// linking a Go git library.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/codenerd-labs/revcrew/internal/classifier"
	"github.com/codenerd-labs/revcrew/internal/contextwindow"
	"github.com/codenerd-labs/revcrew/internal/review"
	"github.com/codenerd-labs/revcrew/internal/vcsdiff"
)

// GitCollaborator resolves changed files and content from a git
// working tree rooted at Dir (the current directory if empty).
type GitCollaborator struct {
	Dir string
}

// ChangedFiles runs `git diff --name-status <ref>` to enumerate
// changed paths and their change type, then `git diff <ref> -- path`
// per file for its unified-diff text.
func (g GitCollaborator) ChangedFiles(ctx context.Context, ref string) ([]ChangedFile, error) {
	out, err := g.run(ctx, "diff", "--name-status", ref)
	if err != nil {
		return nil, fmt.Errorf("vcs: git diff --name-status: %w", err)
	}

	var files []ChangedFile
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		status, path := fields[0], fields[len(fields)-1]

		diff, err := g.run(ctx, "diff", ref, "--", path)
		if err != nil {
			return nil, fmt.Errorf("vcs: git diff %s: %w", path, err)
		}

		files = append(files, ChangedFile{
			FilePath:   path,
			ChangeType: statusToChangeType(status),
			Diff:       diff,
		})
	}
	return files, nil
}

// FullContent reads a file's current working-tree content from Dir,
// the same version that `git diff <ref>` compares against ref.
func (g GitCollaborator) FullContent(ctx context.Context, filePath string) (string, error) {
	out, err := os.ReadFile(filepath.Join(g.Dir, filePath))
	if err != nil {
		return "", fmt.Errorf("vcs: read %s: %w", filePath, err)
	}
	return string(out), nil
}

// ContextWindow resolves filePath's full content and narrows it to
// the window enclosing line via internal/contextwindow.
func (g GitCollaborator) ContextWindow(ctx context.Context, filePath string, line int) (string, error) {
	content, err := g.FullContent(ctx, filePath)
	if err != nil {
		return "", err
	}
	fileType := classifier.Classify(filePath).Type
	return contextwindow.Resolve(ctx, fileType, content, line), nil
}

func (g GitCollaborator) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

func statusToChangeType(status string) review.ChangeType {
	switch status[0] {
	case 'A':
		return review.ChangeAdded
	case 'D':
		return review.ChangeDeleted
	case 'R':
		return review.ChangeRenamed
	default: // "M" and anything else
		return review.ChangeModified
	}
}

var _ Collaborator = GitCollaborator{}

// ParsedDiff is a convenience re-export so callers that already have a
// ChangedFile don't need to import vcsdiff separately just to inspect
// which lines changed.
func ParsedDiff(cf ChangedFile) []vcsdiff.FileDiff {
	return vcsdiff.Parse(cf.Diff)
}
