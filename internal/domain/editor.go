package domain

// EditorTarget is one already-validated absolute path to open in an editor,
// optionally at a 1-based line number (0 = no line).
type EditorTarget struct {
	Path string
	Line int
}
