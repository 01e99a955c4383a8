// Command fosschat-index builds the knowledge-base JSON file from text and
// PDF sources and can optionally embed and upsert the chunks into the
// hosted vector index.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"fosschat/internal/chunker"
	"fosschat/internal/config"
	"fosschat/internal/domain"
	"fosschat/internal/embedding/openai"
	"fosschat/internal/summarizer"
	"fosschat/internal/vectorsearch/pinecone"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath   string
		outPath   string
		category  string
		chunkSize int
		overlap   int
		upsert    bool
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.StringVar(&outPath, "out", "", "Output knowledge-base path (default: knowledge.path from config)")
	flag.StringVar(&category, "category", "", "Category tag applied to all produced chunks")
	flag.IntVar(&chunkSize, "chunk-size", 500, "Chunk character budget")
	flag.IntVar(&overlap, "overlap", 50, "Character overlap between chunks")
	flag.BoolVar(&upsert, "upsert", false, "Embed chunks and upsert them to the vector index")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: fosschat-index [flags] file1.txt [file2.pdf ...]")
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if outPath == "" {
		outPath = cfg.Knowledge.Path
	}

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	ch := chunker.New(chunkSize, overlap)
	var passages []domain.Passage
	var corpus strings.Builder
	for _, pattern := range inputs {
		matches, _ := filepath.Glob(pattern)
		if matches == nil {
			matches = []string{pattern}
		}
		for _, path := range matches {
			text, err := readSource(path)
			if err != nil {
				logger.Warnw("skipping source", "path", path, "error", err)
				continue
			}
			source := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			chunks := ch.Chunk(text, source, category)
			logger.Infow("chunked source", "path", path, "chunks", len(chunks))
			passages = append(passages, chunks...)
			corpus.WriteString("\n")
			corpus.WriteString(text)
		}
	}
	if len(passages) == 0 {
		logger.Fatalw("no chunks produced", "inputs", inputs)
	}

	if err := writeKnowledgeBase(outPath, passages); err != nil {
		logger.Fatalw("failed to write knowledge base", "path", outPath, "error", err)
	}
	logger.Infow("knowledge base written", "path", outPath, "chunks", len(passages))

	summary := summarizer.NewFrequencySummarizer().Summarize(corpus.String(), 3)
	logger.Infow("corpus summary", "summary", summary)

	if upsert {
		if err := upsertChunks(cfg, passages, logger); err != nil {
			logger.Fatalw("upsert failed", "error", err)
		}
	}
}

func readSource(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err == nil && text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func writeKnowledgeBase(path string, passages []domain.Passage) error {
	data, err := json.MarshalIndent(passages, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func upsertChunks(cfg *config.AppConfig, passages []domain.Passage, logger *zap.SugaredLogger) error {
	if cfg.Embedder == nil || cfg.VectorSearch == nil {
		return fmt.Errorf("upsert requires embedder and vector_search config sections")
	}
	emb, err := openai.NewClient(openai.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return err
	}
	searcher, err := pinecone.NewSearcher(pinecone.Config{
		Host:      cfg.VectorSearch.Host,
		APIKeyEnv: cfg.VectorSearch.APIKeyEnv,
		Threshold: cfg.VectorSearch.Threshold,
		Timeout:   time.Duration(cfg.VectorSearch.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	const batchSize = 50
	for start := 0; start < len(passages); start += batchSize {
		end := start + batchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[start:end]
		vectors := make([][]float64, len(batch))
		for i, p := range batch {
			vec, err := emb.Embed(ctx, p.Text)
			if err != nil {
				return fmt.Errorf("embedding chunk %d: %w", start+i, err)
			}
			vectors[i] = vec
		}
		if err := searcher.Upsert(ctx, batch, vectors); err != nil {
			return err
		}
		logger.Infow("upserted batch", "from", start, "to", end)
	}
	return nil
}
