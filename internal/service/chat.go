package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/cloo-solutions/sitechat/internal/domain"
	"github.com/cloo-solutions/sitechat/internal/openai"
	"github.com/cloo-solutions/sitechat/internal/retrieval"
)

const (
	noContentReply   = "I don't have any website content to answer from yet. Please load a website first or contact the company directly."
	noContentReplyHU = "Még nincs betöltött weboldal-tartalom, amiből válaszolhatnék. Kérlek tölts be egy weboldalt, vagy fordulj közvetlenül a céghez."
)

// Generator produces embeddings for queries and chat completions for
// answers.
type Generator interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	Chat(ctx context.Context, messages []openai.Message) (string, error)
}

// SessionReader is the read side of the session store.
type SessionReader interface {
	Get(id string) (domain.Session, bool)
}

// Source cites one retrieved chunk's document in an answer.
type Source struct {
	ID    string
	Title string
	URL   string
	Score float64
}

// AnswerOutput is a generated reply with its cited sources.
type AnswerOutput struct {
	Reply   string
	Sources []Source
}

// ChatService answers questions grounded in a knowledge base.
type ChatService struct {
	ai        Generator
	sessions  SessionReader
	defaultKB *domain.KnowledgeBase
	topK      int
}

// NewChatService creates a chat service. defaultKB is used when a request
// carries no session identifier; topK <= 0 falls back to the retrieval
// default.
func NewChatService(ai Generator, sessions SessionReader, defaultKB *domain.KnowledgeBase, topK int) *ChatService {
	if topK <= 0 {
		topK = retrieval.DefaultK
	}
	return &ChatService{
		ai:        ai,
		sessions:  sessions,
		defaultKB: defaultKB,
		topK:      topK,
	}
}

// Answer generates a grounded reply to message. With a session identifier
// it retrieves from that session's knowledge base only; without one it uses
// the default knowledge base. When no content is available it returns a
// fixed reply instead of attempting retrieval.
func (s *ChatService) Answer(ctx context.Context, message, sessionID string) (*AnswerOutput, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	kb, err := s.knowledgeBaseFor(sessionID)
	if err != nil {
		return nil, err
	}

	if kb.IsEmpty() {
		reply := noContentReply
		if LooksHungarian(message) {
			reply = noContentReplyHU
		}
		return &AnswerOutput{Reply: reply, Sources: []Source{}}, nil
	}

	queryVectors, err := s.ai.EmbedTexts(ctx, []string{message})
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to embed query", err)
	}

	hits := retrieval.TopK(queryVectors[0], kb, s.topK)

	reply, err := s.ai.Chat(ctx, buildPrompt(message, hits))
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate reply", err)
	}

	sources := make([]Source, 0, len(hits))
	for i, h := range hits {
		sources = append(sources, Source{
			ID:    fmt.Sprintf("S%d", i+1),
			Title: h.Title,
			URL:   h.URL,
			Score: math.Round(h.Score*1000) / 1000,
		})
	}

	return &AnswerOutput{Reply: reply, Sources: sources}, nil
}

// knowledgeBaseFor resolves which knowledge base a request retrieves from.
func (s *ChatService) knowledgeBaseFor(sessionID string) (*domain.KnowledgeBase, error) {
	if sessionID == "" {
		return s.defaultKB, nil
	}

	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if sess.Status != domain.SessionStatusReady {
		return nil, domain.ErrSessionNotReady
	}
	return sess.KnowledgeBase, nil
}

// buildPrompt assembles the system and user messages constraining the model
// to the retrieved context, with inline [S<n>] citations and a language
// rule driven by the query.
func buildPrompt(message string, hits []retrieval.Hit) []openai.Message {
	var contextBlocks []string
	var sourceLines []string
	for i, h := range hits {
		contextBlocks = append(contextBlocks, fmt.Sprintf("Source %d (%s):\n%s", i+1, h.Title, h.Chunk))
		sourceLines = append(sourceLines, fmt.Sprintf("[S%d] %s — %s", i+1, h.Title, h.URL))
	}

	languageRule := "Respond in the user language (default English)."
	if LooksHungarian(message) {
		languageRule = "Respond in Hungarian."
	}

	system := strings.Join([]string{
		"You are a concise support bot that answers ONLY using the provided context.",
		"If the answer is not in context, say you do not know and suggest contacting the company.",
		"Cite sources inline as [S1], [S2] etc. matching the provided Source list.",
		languageRule,
	}, " ")

	user := fmt.Sprintf(`User question:
%s

Context:
%s

When you answer, include inline citations like [S1], [S2].

Sources:
%s`, message, strings.Join(contextBlocks, "\n\n"), strings.Join(sourceLines, "\n"))

	return []openai.Message{
		{Role: openai.RoleSystem, Content: system},
		{Role: openai.RoleUser, Content: user},
	}
}
