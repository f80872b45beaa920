package render

import (
	"fmt"
	"html"
	"strings"

	"spyglass/internal/domain"
	"spyglass/internal/ports"
)

// HTMLRenderer produces self-contained HTML documents from raw diff text or
// plain file content. All caller-supplied text is escaped; the document
// carries its own styles and loads nothing remote.
type HTMLRenderer struct{}

var _ ports.DiffRenderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer creates a renderer with no external assets
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// RenderDiff wraps a raw unified diff in an HTML document with per-line
// add/remove/hunk coloring and a repository metadata header
func (r *HTMLRenderer) RenderDiff(raw string, repo *domain.Repository, opts ports.RenderOptions) (string, error) {
	var body strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		class := lineClass(line)
		if class == "" {
			body.WriteString(html.EscapeString(line))
		} else {
			fmt.Fprintf(&body, `<span class=%q>%s</span>`, class, html.EscapeString(line))
		}
		body.WriteString("\n")
	}

	title := "diff"
	var meta string
	if repo != nil {
		title = fmt.Sprintf("diff: %s", repo.GitRoot)
		meta = fmt.Sprintf(`<div class="meta">%s @ %s</div>`,
			html.EscapeString(repo.GitRoot), html.EscapeString(repo.CurrentBranch))
	}

	return document(title, meta, body.String(), opts.ColorScheme), nil
}

// RenderFile wraps plain file content in an HTML document titled by filename
func (r *HTMLRenderer) RenderFile(content, filename string, opts ports.RenderOptions) (string, error) {
	meta := fmt.Sprintf(`<div class="meta">%s</div>`, html.EscapeString(filename))
	return document(filename, meta, html.EscapeString(content), opts.ColorScheme), nil
}

func lineClass(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return "file"
	case strings.HasPrefix(line, "@@"):
		return "hunk"
	case strings.HasPrefix(line, "+"):
		return "add"
	case strings.HasPrefix(line, "-"):
		return "del"
	case strings.HasPrefix(line, "diff --git"):
		return "file"
	}
	return ""
}

func document(title, meta, body, colorScheme string) string {
	scheme := "light dark"
	switch colorScheme {
	case "light", "dark":
		scheme = colorScheme
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
:root { color-scheme: %s; }
body { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 13px; margin: 0; }
.meta { padding: 8px 12px; border-bottom: 1px solid #8884; font-weight: bold; }
pre { margin: 0; padding: 8px 12px; white-space: pre-wrap; word-break: break-all; }
.add { background: #2ea04326; }
.del { background: #f8514926; }
.hunk { color: #8250df; }
.file { font-weight: bold; }
</style>
</head>
<body>
%s
<pre>%s</pre>
</body>
</html>
`, html.EscapeString(title), scheme, meta, body)
}
