package ports

import "spyglass/internal/domain"

// EditorOpener opens already-validated absolute paths in an editor.
// Path validation is never delegated to implementations.
type EditorOpener interface {
	Open(targets []domain.EditorTarget, reuseWindow bool, cliEditor string) error
}
