package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/domain"
	"spyglass/internal/ports"
)

func TestRenderFileEscapesContent(t *testing.T) {
	r := NewHTMLRenderer()

	html, err := r.RenderFile("<script>alert(1)</script>", "evil.js", ports.RenderOptions{})
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, html, "evil.js")
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
}

func TestRenderDiff(t *testing.T) {
	r := NewHTMLRenderer()
	repo := &domain.Repository{GitRoot: "/work/project", CurrentBranch: "main"}

	raw := "diff --git main.go main.go\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-old <line>\n" +
		"+new <line>\n"

	html, err := r.RenderDiff(raw, repo, ports.RenderOptions{ColorScheme: "dark"})
	require.NoError(t, err)

	assert.Contains(t, html, "/work/project")
	assert.Contains(t, html, "main")
	assert.Contains(t, html, `<span class="add">+new &lt;line&gt;</span>`)
	assert.Contains(t, html, `<span class="del">-old &lt;line&gt;</span>`)
	assert.Contains(t, html, `<span class="hunk">@@ -1,2 +1,2 @@</span>`)
	assert.Contains(t, html, "color-scheme: dark;")
	// No remote assets
	assert.NotContains(t, html, "http://")
	assert.NotContains(t, html, "https://")
}

func TestRenderDiffWithoutRepository(t *testing.T) {
	r := NewHTMLRenderer()

	html, err := r.RenderDiff("+added\n", nil, ports.RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, html, "color-scheme: light dark;")
	assert.Contains(t, html, `<span class="add">+added</span>`)
}
