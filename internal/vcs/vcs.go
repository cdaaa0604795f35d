// Package vcs declares the version-control collaborator contract: the
// boundary the pipeline crosses to obtain a changed file's diff and
// content, without depending on any particular VCS.
//
// Grounded on the teacher's exec.Command("git", ...) usage in
// cmd/nerd/cmd_direct_actions.go and cmd/nerd/chat/helpers.go, which
// shell out to git rather than linking a Go git library — revcrew
// follows the same shape for its one concrete implementation.
package vcs

import (
	"context"

	"github.com/codenerd-labs/revcrew/internal/review"
)

// ChangedFile is what a Collaborator reports for one changed path —
// the "file_path, change_type, diff" triple.
type ChangedFile struct {
	FilePath   string
	ChangeType review.ChangeType
	Diff       string // unified-diff text
}

// Collaborator is the external contract a pipeline driver calls
// through to obtain diffs from a version-control repository.
// GitCollaborator (git.go) is the one implementation in this package.
type Collaborator interface {
	// ChangedFiles lists every file changed relative to ref (e.g. "HEAD").
	ChangedFiles(ctx context.Context, ref string) ([]ChangedFile, error)
	// FullContent resolves a file's complete current content.
	FullContent(ctx context.Context, filePath string) (string, error)
	// ContextWindow resolves the content surrounding line within
	// filePath; implementations should prefer a language-aware window
	// (internal/contextwindow) and fall back to a flat ±10 lines.
	ContextWindow(ctx context.Context, filePath string, line int) (string, error)
}
