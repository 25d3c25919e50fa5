package domain

// Page is a raw crawled page. It lives only between the crawler and the
// extractor and is never retained.
type Page struct {
	URL  string
	HTML []byte
}

// TextChunk is one bounded-length span of a document's extracted text, the
// unit of retrieval. Index records its position within the parent document.
type TextChunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Document is one successfully extracted page with its chunks and their
// embeddings. Vectors[i] embeds Chunks[i].Text; the two slices always have
// equal length. Immutable once assembled.
type Document struct {
	ID       string
	URL      string
	Title    string
	FullText string
	Chunks   []TextChunk
	Vectors  [][]float32
}

// Validate checks the chunk/vector pairing invariant.
func (d *Document) Validate() error {
	if len(d.Chunks) != len(d.Vectors) {
		return ErrChunkVectorMismatch
	}
	return nil
}

// KnowledgeBase is the ordered set of documents available for retrieval in
// one session or as the default dataset. Read-only once attached to a
// ready session.
type KnowledgeBase struct {
	Documents []*Document
}

// IsEmpty reports whether the knowledge base holds no chunks at all.
func (kb *KnowledgeBase) IsEmpty() bool {
	if kb == nil {
		return true
	}
	for _, d := range kb.Documents {
		if len(d.Chunks) > 0 {
			return false
		}
	}
	return true
}

// TotalChunks returns the chunk count across all documents.
func (kb *KnowledgeBase) TotalChunks() int {
	if kb == nil {
		return 0
	}
	total := 0
	for _, d := range kb.Documents {
		total += len(d.Chunks)
	}
	return total
}
