package domain

// DiffType selects what the diff compares
type DiffType string

const (
	DiffStaged      DiffType = "staged"
	DiffUnstaged    DiffType = "unstaged"
	DiffCommit      DiffType = "commit"
	DiffCommitRange DiffType = "commit-range"
	DiffBranch      DiffType = "branch"
)

// Repository describes a detected git repository. It is built fresh for every
// request (branch and remotes may change between calls) and never mutated.
type Repository struct {
	GitRoot          string
	CurrentBranch    string
	HasRemote        bool
	RemoteName       string
	RemoteURL        string
	WorkingDirectory string
}

// DiffRequest describes a single diff to generate. Base and Target are git
// refs whose meaning depends on Type; Paths narrows the diff to specific
// files and is validated before any subprocess is built.
type DiffRequest struct {
	Type             DiffType
	Base             string
	Target           string
	Paths            []string
	ContextLines     *int
	IgnoreWhitespace bool
}

// FileStatus classifies how a file changed
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
	StatusCopied   FileStatus = "copied"
)

// DiffChunk is one hunk of a unified diff
type DiffChunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Header   string
	Content  string
}

// FileDiff holds per-file change information. OldPath is set only for
// renames. Chunks is empty in stats-only parsing.
type FileDiff struct {
	Path      string
	OldPath   string
	Status    FileStatus
	Additions int
	Deletions int
	Chunks    []DiffChunk
}

// DiffTotals aggregates counts across all files in a result.
// Invariant: Additions and Deletions equal the sums over the per-file
// counts, and FilesChanged equals the number of files.
type DiffTotals struct {
	FilesChanged int
	Additions    int
	Deletions    int
}

// DiffResult is the structured outcome of one diff request. It is owned by
// the caller and never mutated after construction. Raw holds the unified
// diff body exactly as the subprocess produced it.
type DiffResult struct {
	Repository Repository
	Type       DiffType
	Target     string
	Files      []FileDiff
	Stats      DiffTotals
	Raw        string
}
