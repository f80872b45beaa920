package ports

import "spyglass/internal/domain"

// RenderOptions configures a diff-to-HTML renderer implementation
type RenderOptions struct {
	OutputFormat       string // "line-by-line" or "side-by-side"
	ColorScheme        string // "light", "dark", or "auto"
	Matching           string // line-matching strategy
	DrawFileList       bool
	Highlight          bool
	SynchronisedScroll bool
}

// DiffRenderer turns raw unified diff text (or plain file content) into a
// self-contained HTML document. The core supplies only the raw text and
// repository metadata and never re-parses the returned fragment.
type DiffRenderer interface {
	RenderDiff(raw string, repo *domain.Repository, opts RenderOptions) (string, error)
	RenderFile(content, filename string, opts RenderOptions) (string, error)
}
