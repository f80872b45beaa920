package git

import (
	"regexp"
	"strconv"
	"strings"

	"spyglass/internal/domain"
)

// numstatLine matches `<added>\t<deleted>\t<path>`; binary files report "-"
// in the count columns
var numstatLine = regexp.MustCompile(`^(\d+|-)\t(\d+|-)\t(.+)$`)

// hunkHeader matches `@@ -old[,n] +new[,n] @@ optional section`
var hunkHeader = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@(?: (.*))?$`)

// parseNumstat extracts per-file counts and totals from --numstat output.
// Lines produced by --summary (create/delete/rename notices) do not match
// the numstat shape and are skipped. Statuses default to modified; the
// caller refines them from the raw diff body.
func parseNumstat(out string) ([]domain.FileDiff, domain.DiffTotals) {
	var files []domain.FileDiff
	var totals domain.DiffTotals

	for _, line := range strings.Split(out, "\n") {
		m := numstatLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		additions := parseCount(m[1])
		deletions := parseCount(m[2])
		files = append(files, domain.FileDiff{
			Path:      numstatPath(m[3]),
			Status:    domain.StatusModified,
			Additions: additions,
			Deletions: deletions,
		})
		totals.Additions += additions
		totals.Deletions += deletions
	}
	totals.FilesChanged = len(files)

	return files, totals
}

// parseCount converts a numstat count column; "-" marks a binary file and
// counts as zero
func parseCount(s string) int {
	if s == "-" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// numstatPath resolves the rename notation in a numstat path column to the
// new path: either `prefix{old => new}suffix` or a bare `old => new`
func numstatPath(p string) string {
	if !strings.Contains(p, " => ") {
		return p
	}
	start := strings.Index(p, "{")
	end := strings.Index(p, "}")
	if start >= 0 && end > start {
		inner := p[start+1 : end]
		parts := strings.Split(inner, " => ")
		p = p[:start] + parts[len(parts)-1] + p[end+1:]
		return strings.ReplaceAll(p, "//", "/")
	}
	parts := strings.Split(p, " => ")
	return parts[len(parts)-1]
}

// refineStatuses upgrades the default modified status by scanning the raw
// diff body for file mode and rename markers. Files the scan does not
// mention keep their numstat-derived entry untouched.
func refineStatuses(files []domain.FileDiff, raw string) {
	if len(files) == 0 || raw == "" {
		return
	}

	index := make(map[string]*domain.FileDiff, len(files))
	for i := range files {
		index[files[i].Path] = &files[i]
	}

	var currentPath string
	var renameFrom, copyFrom string
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			// With --no-prefix both sides are bare paths; the new path is
			// the last field. Rename markers below override it when the
			// two sides differ.
			fields := strings.Fields(line)
			currentPath = fields[len(fields)-1]
			renameFrom, copyFrom = "", ""
		case strings.HasPrefix(line, "new file mode"):
			if f, ok := index[currentPath]; ok {
				f.Status = domain.StatusAdded
			}
		case strings.HasPrefix(line, "deleted file mode"):
			if f, ok := index[currentPath]; ok {
				f.Status = domain.StatusDeleted
			}
		case strings.HasPrefix(line, "rename from "):
			renameFrom = strings.TrimPrefix(line, "rename from ")
		case strings.HasPrefix(line, "rename to "):
			to := strings.TrimPrefix(line, "rename to ")
			if f, ok := index[to]; ok {
				f.Status = domain.StatusRenamed
				f.OldPath = renameFrom
			}
		case strings.HasPrefix(line, "copy from "):
			copyFrom = strings.TrimPrefix(line, "copy from ")
		case strings.HasPrefix(line, "copy to "):
			to := strings.TrimPrefix(line, "copy to ")
			if f, ok := index[to]; ok {
				f.Status = domain.StatusCopied
				f.OldPath = copyFrom
			}
		}
	}
}

// parseUnified splits a raw unified diff body into per-file chunk lists.
// Counts are not derived here; numstat is the authoritative source for
// those. Used when callers need structured hunks rather than the raw text.
func parseUnified(raw string) []domain.FileDiff {
	var files []domain.FileDiff
	var current *domain.FileDiff
	var chunk *domain.DiffChunk
	var chunkLines []string

	flushChunk := func() {
		if current != nil && chunk != nil {
			chunk.Content = strings.Join(chunkLines, "\n")
			current.Chunks = append(current.Chunks, *chunk)
		}
		chunk = nil
		chunkLines = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "diff --git ") {
			flushChunk()
			fields := strings.Fields(line)
			files = append(files, domain.FileDiff{
				Path:   fields[len(fields)-1],
				Status: domain.StatusModified,
			})
			current = &files[len(files)-1]
			continue
		}

		if current == nil {
			continue
		}

		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			flushChunk()
			chunk = &domain.DiffChunk{
				OldStart: parseCount(m[1]),
				OldLines: hunkCount(m[2]),
				NewStart: parseCount(m[3]),
				NewLines: hunkCount(m[4]),
				Header:   m[5],
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "new file mode"):
			current.Status = domain.StatusAdded
		case strings.HasPrefix(line, "deleted file mode"):
			current.Status = domain.StatusDeleted
		case strings.HasPrefix(line, "rename from "):
			current.OldPath = strings.TrimPrefix(line, "rename from ")
			current.Status = domain.StatusRenamed
		case strings.HasPrefix(line, "rename to "):
			current.Path = strings.TrimPrefix(line, "rename to ")
		}

		if chunk == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+"):
			current.Additions++
			chunkLines = append(chunkLines, line)
		case strings.HasPrefix(line, "-"):
			current.Deletions++
			chunkLines = append(chunkLines, line)
		case strings.HasPrefix(line, " "), strings.HasPrefix(line, `\`):
			chunkLines = append(chunkLines, line)
		}
	}
	flushChunk()

	return files
}

// hunkCount parses an optional hunk line count, which defaults to 1 when
// the `,n` part is omitted
func hunkCount(s string) int {
	if s == "" {
		return 1
	}
	return parseCount(s)
}
