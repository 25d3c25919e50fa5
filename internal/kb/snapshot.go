// Package kb loads and saves the file-backed default knowledge base.
package kb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/cloo-solutions/sitechat/internal/domain"
)

// snapshotDocument is the on-disk shape of one document: chunks[i] is
// embedded by vectors[i].
type snapshotDocument struct {
	ID      string      `json:"id"`
	URL     string      `json:"url"`
	Title   string      `json:"title"`
	Chunks  []string    `json:"chunks"`
	Vectors [][]float32 `json:"vectors"`
}

// Load reads the snapshot at path into a knowledge base. A missing file is
// not an error: the service starts with an empty default knowledge base.
func Load(path string) (*domain.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("kb: no snapshot at %s, starting with empty knowledge base", path)
		return &domain.KnowledgeBase{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot []snapshotDocument
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}

	kb := &domain.KnowledgeBase{}
	for _, sd := range snapshot {
		doc := &domain.Document{
			ID:      sd.ID,
			URL:     sd.URL,
			Title:   sd.Title,
			Vectors: sd.Vectors,
		}
		for i, text := range sd.Chunks {
			doc.Chunks = append(doc.Chunks, domain.TextChunk{Index: i, Text: text})
		}
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("snapshot document %q: %w", sd.ID, err)
		}
		kb.Documents = append(kb.Documents, doc)
	}

	log.Printf("kb: loaded snapshot %s (%d documents, %d chunks)", path, len(kb.Documents), kb.TotalChunks())
	return kb, nil
}

// Save writes the knowledge base as a snapshot file, creating parent
// directories as needed.
func Save(path string, kb *domain.KnowledgeBase) error {
	snapshot := make([]snapshotDocument, 0, len(kb.Documents))
	for _, doc := range kb.Documents {
		sd := snapshotDocument{
			ID:      doc.ID,
			URL:     doc.URL,
			Title:   doc.Title,
			Vectors: doc.Vectors,
		}
		for _, c := range doc.Chunks {
			sd.Chunks = append(sd.Chunks, c.Text)
		}
		snapshot = append(snapshot, sd)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
