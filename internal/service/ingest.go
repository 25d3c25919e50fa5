package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/cloo-solutions/sitechat/internal/chunker"
	"github.com/cloo-solutions/sitechat/internal/domain"
	"github.com/cloo-solutions/sitechat/internal/extract"
	"github.com/cloo-solutions/sitechat/internal/telemetry"
)

// embedCallTimeout bounds each embedding request so a hanging endpoint
// fails the run instead of stalling the session forever.
const embedCallTimeout = 60 * time.Second

// PageCrawler yields raw pages from a breadth-first site traversal.
type PageCrawler interface {
	Crawl(ctx context.Context, seed string, maxPages int, sameHostOnly bool) []domain.Page
}

// Embedder maps texts to vectors, order-preserving.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SessionStore is the session state the pipeline writes back into.
type SessionStore interface {
	Create(seedURL string) domain.Session
	Get(id string) (domain.Session, bool)
	Ready(id string, kb *domain.KnowledgeBase) bool
	Delete(id string)
}

// IngestConfig tunes one ingestion pipeline.
type IngestConfig struct {
	MaxPages      int
	MaxChunkChars int
	SameHostOnly  bool
}

// IngestService runs the crawl -> extract -> chunk -> embed -> assemble
// pipeline and manages the session lifecycle around it.
type IngestService struct {
	crawler  PageCrawler
	embedder Embedder
	store    SessionStore
	cfg      IngestConfig
}

// NewIngestService creates an ingest service.
func NewIngestService(crawler PageCrawler, embedder Embedder, store SessionStore, cfg IngestConfig) *IngestService {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 10
	}
	if cfg.MaxChunkChars <= 0 {
		cfg.MaxChunkChars = chunker.DefaultMaxChars
	}
	return &IngestService{
		crawler:  crawler,
		embedder: embedder,
		store:    store,
		cfg:      cfg,
	}
}

// Start validates the seed URL, registers a scraping session, and kicks off
// the pipeline in the background. It returns immediately; callers poll the
// session status to observe completion.
func (s *IngestService) Start(seedURL string) (domain.Session, error) {
	if seedURL == "" {
		return domain.Session{}, domain.ErrMissingURL
	}
	parsed, err := url.Parse(seedURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return domain.Session{}, domain.ErrInvalidSeedURL
	}

	sess := s.store.Create(seedURL)
	go s.run(sess.ID, seedURL)
	return sess, nil
}

// run executes the pipeline for one session. Any failure or empty result
// deletes the session; a later status poll reports not_found. There is no
// abort signal: once started, a run goes to completion or failure.
func (s *IngestService) run(sessionID, seedURL string) {
	ctx := context.Background()
	kb, err := s.BuildKnowledgeBase(ctx, seedURL)
	if err != nil {
		log.Printf("ingest: session %s failed: %v", sessionID, err)
		telemetry.CaptureError(ctx, err)
		s.store.Delete(sessionID)
		return
	}
	if kb.IsEmpty() {
		log.Printf("ingest: session %s produced no content, discarding", sessionID)
		s.store.Delete(sessionID)
		return
	}

	if !s.store.Ready(sessionID, kb) {
		log.Printf("ingest: session %s disappeared before completion", sessionID)
		return
	}
	log.Printf("ingest: session %s ready (%d documents, %d chunks)",
		sessionID, len(kb.Documents), kb.TotalChunks())
}

// BuildKnowledgeBase runs the ingestion pipeline for seedURL and returns the
// assembled knowledge base. Fetch failures and empty extractions skip the
// page; an embedding failure aborts the whole build.
func (s *IngestService) BuildKnowledgeBase(ctx context.Context, seedURL string) (*domain.KnowledgeBase, error) {
	pages := s.crawler.Crawl(ctx, seedURL, s.cfg.MaxPages, s.cfg.SameHostOnly)

	kb := &domain.KnowledgeBase{}
	for _, page := range pages {
		content, ok := extract.Extract(page.HTML, page.URL)
		if !ok {
			log.Printf("ingest: no extractable content at %s", page.URL)
			continue
		}

		chunks := chunker.Chunk(content.Text, s.cfg.MaxChunkChars)
		if len(chunks) == 0 {
			continue
		}

		doc := &domain.Document{
			ID:       page.URL,
			URL:      page.URL,
			Title:    content.Title,
			FullText: content.Text,
		}
		for i, text := range chunks {
			doc.Chunks = append(doc.Chunks, domain.TextChunk{Index: i, Text: text})
		}
		kb.Documents = append(kb.Documents, doc)
	}

	total := kb.TotalChunks()
	embedded := 0
	for _, doc := range kb.Documents {
		for _, chunk := range doc.Chunks {
			embedded++
			log.Printf("ingest: embedding chunk %d/%d", embedded, total)

			vec, err := s.embedChunk(ctx, chunk.Text)
			if err != nil {
				return nil, fmt.Errorf("embed chunk %d/%d: %w", embedded, total, err)
			}
			doc.Vectors = append(doc.Vectors, vec)
		}
		if err := doc.Validate(); err != nil {
			return nil, err
		}
	}

	return kb, nil
}

// embedChunk embeds one chunk under its own deadline.
func (s *IngestService) embedChunk(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := context.WithTimeout(ctx, embedCallTimeout)
	defer cancel()

	vectors, err := s.embedder.EmbedTexts(callCtx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 vector, got %d", len(vectors))
	}
	return vectors[0], nil
}

// PageSummary names one ingested page in a status report.
type PageSummary struct {
	Title string
	URL   string
}

// StatusOutput is the result of polling a session.
type StatusOutput struct {
	Status    string
	Documents int
	Chunks    int
	Pages     []PageSummary
}

// Session status values surfaced to clients. A deleted (failed) session and
// an unknown identifier both report not_found.
const (
	StatusNotFound = "not_found"
	StatusScraping = string(domain.SessionStatusScraping)
	StatusReady    = string(domain.SessionStatusReady)
)

// Status reports the lifecycle state of a session, including a knowledge
// base summary once ready.
func (s *IngestService) Status(sessionID string) StatusOutput {
	sess, ok := s.store.Get(sessionID)
	if !ok {
		return StatusOutput{Status: StatusNotFound}
	}
	if sess.Status != domain.SessionStatusReady {
		return StatusOutput{Status: StatusScraping}
	}

	out := StatusOutput{
		Status:    StatusReady,
		Documents: len(sess.KnowledgeBase.Documents),
		Chunks:    sess.KnowledgeBase.TotalChunks(),
	}
	for _, doc := range sess.KnowledgeBase.Documents {
		out.Pages = append(out.Pages, PageSummary{Title: doc.Title, URL: doc.URL})
	}
	return out
}
