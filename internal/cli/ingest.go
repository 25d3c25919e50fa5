package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/cloo-solutions/sitechat/internal/config"
	"github.com/cloo-solutions/sitechat/internal/crawler"
	"github.com/cloo-solutions/sitechat/internal/kb"
	"github.com/cloo-solutions/sitechat/internal/openai"
	"github.com/cloo-solutions/sitechat/internal/service"
	"github.com/spf13/cobra"
)

// IngestCmd returns the ingest command. It runs the crawl and embedding
// pipeline in the foreground and writes the result as the default knowledge
// base snapshot, so the server can answer site-wide questions without a
// per-session scrape.
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Crawl a site and write a knowledge base snapshot",
		Long:  "Crawl a site, embed its content, and write the result to a JSON snapshot usable as the server's default knowledge base",
		RunE:  runIngest,
	}

	cmd.Flags().String("url", "", "Seed URL to crawl (required)")
	cmd.Flags().Int("max-pages", 0, "Maximum pages to crawl (defaults to config)")
	cmd.Flags().String("out", "", "Snapshot output path (defaults to config)")
	cmd.Flags().Bool("same-host", true, "Restrict the crawl to the seed URL's host")
	cmd.MarkFlagRequired("url")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	seedURL, _ := cmd.Flags().GetString("url")
	maxPages, _ := cmd.Flags().GetInt("max-pages")
	outPath, _ := cmd.Flags().GetString("out")
	sameHost, _ := cmd.Flags().GetBool("same-host")

	if maxPages <= 0 {
		maxPages = cfg.MaxPages
	}
	if outPath == "" {
		outPath = cfg.SnapshotPath
	}

	aiClient := openai.NewClient(openai.Config{
		APIKey:         cfg.AIAPIKey,
		BaseURL:        cfg.AIBaseURL,
		EmbeddingModel: cfg.EmbedModel,
		ChatModel:      cfg.ChatModel,
	})

	siteCrawler := crawler.New(crawler.NewFetcher(0))
	ingestSvc := service.NewIngestService(siteCrawler, aiClient, nil, service.IngestConfig{
		MaxPages:      maxPages,
		MaxChunkChars: cfg.MaxChunkChars,
		SameHostOnly:  sameHost,
	})

	log.Printf("ingesting %s (max %d pages)", seedURL, maxPages)
	knowledgeBase, err := ingestSvc.BuildKnowledgeBase(context.Background(), seedURL)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if knowledgeBase.IsEmpty() {
		return fmt.Errorf("no extractable content found at %s", seedURL)
	}

	if err := kb.Save(outPath, knowledgeBase); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	log.Printf("wrote %s (%d documents, %d chunks)",
		outPath, len(knowledgeBase.Documents), knowledgeBase.TotalChunks())
	return nil
}
