package ports

// PutResult identifies a stored artifact and where it can be fetched
type PutResult struct {
	ID  string
	URL string
}

// ArtifactStore holds generated content in memory and exposes it by opaque id
type ArtifactStore interface {
	Put(content, filename string) (PutResult, error)
	Count() int
}
