// Package genai wraps the chat-completion API used to phrase answers from
// retrieved context.
package genai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

const systemPrompt = "You are a FOSS-CIT expert. Give accurate, professional answers based on the context. " +
	"Be direct and helpful. Answer in 1-2 sentences maximum."

// Config configures the chat-completion client.
type Config struct {
	BaseURL         string
	APIKeyEnv       string
	Model           string
	Timeout         time.Duration
	MaxContextChars int
	MaxSentences    int
}

// Client generates brief answers through an OpenAI-compatible chat API.
// Keys issued by OpenRouter (prefix "sk-or-") are routed there automatically.
type Client struct {
	api             openai.Client
	model           string
	maxContextChars int
	maxSentences    int
}

// NewClient creates the chat client. The API key is read from the
// environment variable named in cfg; a missing key is a configuration error.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" && strings.HasPrefix(key, "sk-or-") {
		baseURL = openRouterBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithRequestTimeout(timeout),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	maxChars := cfg.MaxContextChars
	if maxChars == 0 {
		maxChars = 300
	}
	maxSentences := cfg.MaxSentences
	if maxSentences == 0 {
		maxSentences = 2
	}
	return &Client{
		api:             openai.NewClient(opts...),
		model:           model,
		maxContextChars: maxChars,
		maxSentences:    maxSentences,
	}, nil
}

// Generate asks the model for a brief answer to question grounded in the
// retrieved contextText. The context is truncated to a fixed character
// budget before the call and the reply is cut to at most the configured
// number of sentences after it.
func (c *Client) Generate(ctx context.Context, question, contextText string) (string, error) {
	summary := truncateChars(contextText, c.maxContextChars)
	user := fmt.Sprintf("Context about FOSS-CIT: %s\n\nQuestion: %s\n\nProvide a direct, professional answer:", summary, question)

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(80),
		TopP:        openai.Float(0.9),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	return truncateSentences(answer, c.maxSentences), nil
}

// truncateChars cuts s at the given character budget, marking the cut with
// an ellipsis.
func truncateChars(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars]) + "..."
}

// truncateSentences keeps at most maxSentences sentence-terminated clauses.
func truncateSentences(s string, maxSentences int) string {
	parts := strings.Split(s, ".")
	if len(parts) <= maxSentences {
		return s
	}
	return strings.Join(parts[:maxSentences], ".") + "."
}
