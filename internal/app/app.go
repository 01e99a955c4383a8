// Package app assembles the chat service from configuration. Shared by the
// HTTP server and the terminal client.
package app

import (
	"time"

	"go.uber.org/zap"

	"fosschat/internal/config"
	"fosschat/internal/embedding/openai"
	"fosschat/internal/genai"
	"fosschat/internal/knowledge"
	"fosschat/internal/retriever"
	"fosschat/internal/service"
	"fosschat/internal/shortcut"
	"fosschat/internal/vectorsearch/pinecone"
)

// Assemble wires the application core. Missing API keys degrade features
// (generation, vector search) instead of aborting startup; only a bad
// retriever strategy is fatal.
func Assemble(cfg *config.AppConfig, logger *zap.SugaredLogger) (*service.ChatService, error) {
	store := knowledge.Load(cfg.Knowledge.Path, logger)

	ranker, err := retriever.New(cfg.Retriever.Strategy)
	if err != nil {
		return nil, err
	}

	entries := make([]shortcut.Entry, len(cfg.Shortcuts))
	for i, s := range cfg.Shortcuts {
		entries[i] = shortcut.Entry{Trigger: s.Trigger, Answer: s.Answer}
	}
	table := shortcut.NewTable(entries)

	var opts []service.Option
	gen, err := genai.NewClient(genai.Config{
		BaseURL:         cfg.Chat.BaseURL,
		APIKeyEnv:       cfg.Chat.APIKeyEnv,
		Model:           cfg.Chat.Model,
		Timeout:         time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
		MaxContextChars: cfg.Chat.MaxContextChars,
		MaxSentences:    cfg.Chat.MaxSentences,
	})
	if err != nil {
		logger.Warnw("generation disabled", "error", err)
	} else {
		opts = append(opts, service.WithGenerator(gen))
	}

	if cfg.VectorSearch != nil && cfg.Embedder != nil {
		emb, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.BaseURL,
			APIKeyEnv: cfg.Embedder.APIKeyEnv,
			Model:     cfg.Embedder.Model,
			Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Warnw("vector search disabled", "error", err)
		} else {
			searcher, err := pinecone.NewSearcher(pinecone.Config{
				Host:      cfg.VectorSearch.Host,
				APIKeyEnv: cfg.VectorSearch.APIKeyEnv,
				Threshold: cfg.VectorSearch.Threshold,
				Timeout:   time.Duration(cfg.VectorSearch.TimeoutSecs) * time.Second,
			})
			if err != nil {
				logger.Warnw("vector search disabled", "error", err)
			} else {
				opts = append(opts, service.WithVectorSearch(emb, searcher))
			}
		}
	}

	return service.NewChatService(store, ranker, table, cfg.Retriever.TopK, logger, opts...), nil
}
