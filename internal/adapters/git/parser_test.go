package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/internal/domain"
)

func TestParseNumstat(t *testing.T) {
	out := "3\t1\tsrc/main.go\n" +
		"12\t0\tdocs/readme.md\n" +
		"-\t-\tassets/logo.png\n" +
		"0\t8\told/dead.go\n" +
		" create mode 100644 docs/readme.md\n" +
		" delete mode 100644 old/dead.go\n"

	files, totals := parseNumstat(out)

	require.Len(t, files, 4)
	assert.Equal(t, "src/main.go", files[0].Path)
	assert.Equal(t, 3, files[0].Additions)
	assert.Equal(t, 1, files[0].Deletions)

	// Binary files count as zero but still appear
	assert.Equal(t, "assets/logo.png", files[2].Path)
	assert.Equal(t, 0, files[2].Additions)
	assert.Equal(t, 0, files[2].Deletions)

	// Totals are the sums over per-file counts
	assert.Equal(t, 4, totals.FilesChanged)
	assert.Equal(t, 15, totals.Additions)
	assert.Equal(t, 9, totals.Deletions)
}

func TestParseNumstatEmpty(t *testing.T) {
	files, totals := parseNumstat("")
	assert.Empty(t, files)
	assert.Equal(t, domain.DiffTotals{}, totals)
}

func TestNumstatPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain path",
			input: "src/main.go",
			want:  "src/main.go",
		},
		{
			name:  "braced rename takes the new side",
			input: "src/{old => new}/file.go",
			want:  "src/new/file.go",
		},
		{
			name:  "braced rename with empty new side collapses the slash",
			input: "src/{nested => }/file.go",
			want:  "src/file.go",
		},
		{
			name:  "bare rename takes the new side",
			input: "old.go => new.go",
			want:  "new.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numstatPath(tt.input))
		})
	}
}

func TestRefineStatuses(t *testing.T) {
	raw := "diff --git added.go added.go\n" +
		"new file mode 100644\n" +
		"index 0000000..e69de29\n" +
		"--- /dev/null\n" +
		"+++ added.go\n" +
		"diff --git removed.go removed.go\n" +
		"deleted file mode 100644\n" +
		"diff --git old_name.go new_name.go\n" +
		"similarity index 95%\n" +
		"rename from old_name.go\n" +
		"rename to new_name.go\n" +
		"diff --git touched.go touched.go\n" +
		"index 1111111..2222222 100644\n"

	files := []domain.FileDiff{
		{Path: "added.go", Status: domain.StatusModified},
		{Path: "removed.go", Status: domain.StatusModified},
		{Path: "new_name.go", Status: domain.StatusModified},
		{Path: "touched.go", Status: domain.StatusModified},
	}

	refineStatuses(files, raw)

	assert.Equal(t, domain.StatusAdded, files[0].Status)
	assert.Equal(t, domain.StatusDeleted, files[1].Status)
	assert.Equal(t, domain.StatusRenamed, files[2].Status)
	assert.Equal(t, "old_name.go", files[2].OldPath)
	assert.Equal(t, domain.StatusModified, files[3].Status)
}

func TestParseUnified(t *testing.T) {
	raw := "diff --git main.go main.go\n" +
		"index 1111111..2222222 100644\n" +
		"--- main.go\n" +
		"+++ main.go\n" +
		"@@ -1,4 +1,6 @@ func main() {\n" +
		" import (\n" +
		"+\t\"fmt\"\n" +
		"+\t\"os\"\n" +
		" \t\"strings\"\n" +
		"-\t\"bytes\"\n" +
		" )\n" +
		"@@ -20 +22,2 @@\n" +
		"+\tfmt.Println(\"hello\")\n" +
		" }\n"

	files := parseUnified(raw)

	require.Len(t, files, 1)
	f := files[0]
	assert.Equal(t, "main.go", f.Path)
	assert.Equal(t, 3, f.Additions)
	assert.Equal(t, 1, f.Deletions)

	require.Len(t, f.Chunks, 2)
	assert.Equal(t, 1, f.Chunks[0].OldStart)
	assert.Equal(t, 4, f.Chunks[0].OldLines)
	assert.Equal(t, 1, f.Chunks[0].NewStart)
	assert.Equal(t, 6, f.Chunks[0].NewLines)
	assert.Equal(t, "func main() {", f.Chunks[0].Header)
	assert.Contains(t, f.Chunks[0].Content, "+\t\"fmt\"")

	// Omitted counts default to 1
	assert.Equal(t, 20, f.Chunks[1].OldStart)
	assert.Equal(t, 1, f.Chunks[1].OldLines)
	assert.Equal(t, 22, f.Chunks[1].NewStart)
	assert.Equal(t, 2, f.Chunks[1].NewLines)
}

func TestParseUnifiedNewFile(t *testing.T) {
	raw := "diff --git fresh.txt fresh.txt\n" +
		"new file mode 100644\n" +
		"index 0000000..abcdef0\n" +
		"--- /dev/null\n" +
		"+++ fresh.txt\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+line one\n" +
		"+line two\n"

	files := parseUnified(raw)

	require.Len(t, files, 1)
	assert.Equal(t, domain.StatusAdded, files[0].Status)
	assert.Equal(t, 2, files[0].Additions)
	assert.Equal(t, 0, files[0].Deletions)
}
