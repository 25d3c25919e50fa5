package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloo-solutions/sitechat/internal/domain"
	"github.com/cloo-solutions/sitechat/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCrawler is a mock implementation of PageCrawler
type MockCrawler struct {
	mock.Mock
}

func (m *MockCrawler) Crawl(ctx context.Context, seed string, maxPages int, sameHostOnly bool) []domain.Page {
	args := m.Called(ctx, seed, maxPages, sameHostOnly)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Page)
}

// MockEmbedder is a mock implementation of Embedder
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

const testPageHTML = `<html><head><title>About</title></head><body><article><p>
Our company has been building custom garden furniture for over twenty years.
Every piece is handmade from locally sourced oak and treated to survive the
harshest winters. We deliver across the whole country and assemble on site,
free of charge for orders above the standard threshold, with delivery within
four to six weeks of ordering for any item in the catalogue.
</p></article></body></html>`

func waitForStatus(t *testing.T, svc *IngestService, sessionID, want string) StatusOutput {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out := svc.Status(sessionID); out.Status == want {
			return out
		}
		time.Sleep(10 * time.Millisecond)
	}
	out := svc.Status(sessionID)
	require.Equal(t, want, out.Status, "session never reached status %q", want)
	return out
}

func TestIngest_StartValidation(t *testing.T) {
	svc := NewIngestService(new(MockCrawler), new(MockEmbedder), session.NewStore(time.Hour), IngestConfig{})

	_, err := svc.Start("")
	assert.ErrorIs(t, err, domain.ErrMissingURL)

	_, err = svc.Start("not-a-url")
	assert.ErrorIs(t, err, domain.ErrInvalidSeedURL)

	_, err = svc.Start("ftp://example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidSeedURL)
}

func TestIngest_StartReturnsImmediately(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("Crawl", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := NewIngestService(crawler, new(MockEmbedder), session.NewStore(time.Hour), IngestConfig{})

	sess, err := svc.Start("https://example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, domain.SessionStatusScraping, sess.Status)
}

func TestIngest_SuccessfulRun(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("Crawl", mock.Anything, "https://example.com", 10, true).Return([]domain.Page{
		{URL: "https://example.com", HTML: []byte(testPageHTML)},
	})

	embedder := new(MockEmbedder)
	embedder.On("EmbedTexts", mock.Anything, mock.Anything).Return([][]float32{{0.1, 0.2}}, nil)

	svc := NewIngestService(crawler, embedder, session.NewStore(time.Hour), IngestConfig{
		MaxPages:     10,
		SameHostOnly: true,
	})

	sess, err := svc.Start("https://example.com")
	require.NoError(t, err)

	out := waitForStatus(t, svc, sess.ID, StatusReady)
	assert.Equal(t, 1, out.Documents)
	assert.GreaterOrEqual(t, out.Chunks, 1)
	require.Len(t, out.Pages, 1)
	assert.Equal(t, "https://example.com", out.Pages[0].URL)
	assert.NotEmpty(t, out.Pages[0].Title)
}

func TestIngest_ZeroPagesDeletesSession(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("Crawl", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := NewIngestService(crawler, new(MockEmbedder), session.NewStore(time.Hour), IngestConfig{})

	sess, err := svc.Start("https://example.com")
	require.NoError(t, err)

	waitForStatus(t, svc, sess.ID, StatusNotFound)
}

func TestIngest_EmbeddingFailureDeletesSession(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("Crawl", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.Page{
		{URL: "https://example.com", HTML: []byte(testPageHTML)},
	})

	embedder := new(MockEmbedder)
	embedder.On("EmbedTexts", mock.Anything, mock.Anything).Return(nil, errors.New("service down"))

	svc := NewIngestService(crawler, embedder, session.NewStore(time.Hour), IngestConfig{})

	sess, err := svc.Start("https://example.com")
	require.NoError(t, err)

	waitForStatus(t, svc, sess.ID, StatusNotFound)
}

func TestIngest_UnextractablePagesAreSkipped(t *testing.T) {
	crawler := new(MockCrawler)
	crawler.On("Crawl", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.Page{
		{URL: "https://example.com/empty", HTML: []byte("<html><body></body></html>")},
		{URL: "https://example.com/about", HTML: []byte(testPageHTML)},
	})

	embedder := new(MockEmbedder)
	embedder.On("EmbedTexts", mock.Anything, mock.Anything).Return([][]float32{{0.5}}, nil)

	svc := NewIngestService(crawler, embedder, session.NewStore(time.Hour), IngestConfig{})

	kb, err := svc.BuildKnowledgeBase(context.Background(), "https://example.com")
	require.NoError(t, err)
	require.Len(t, kb.Documents, 1)
	assert.Equal(t, "https://example.com/about", kb.Documents[0].URL)
	assert.NoError(t, kb.Documents[0].Validate())
}

func TestIngest_StatusUnknownSession(t *testing.T) {
	svc := NewIngestService(new(MockCrawler), new(MockEmbedder), session.NewStore(time.Hour), IngestConfig{})

	assert.Equal(t, StatusNotFound, svc.Status("no-such-session").Status)
}
