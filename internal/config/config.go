package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// KnowledgeConfig locates the persisted knowledge base.
type KnowledgeConfig struct {
	Path string `yaml:"path"`
}

// RetrieverConfig selects the local ranking strategy.
type RetrieverConfig struct {
	Strategy string `yaml:"strategy"`
	TopK     int    `yaml:"top_k"`
}

// ChatConfig configures the chat-completion client.
type ChatConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKeyEnv       string `yaml:"api_key_env"`
	Model           string `yaml:"model"`
	TimeoutSecs     int    `yaml:"timeout_secs"`
	MaxContextChars int    `yaml:"max_context_chars"`
	MaxSentences    int    `yaml:"max_sentences"`
}

// EmbedderConfig configures the OpenAI-compatible embeddings client.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorSearchConfig contains connection details for the hosted vector index.
type VectorSearchConfig struct {
	Host        string  `yaml:"host"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Threshold   float64 `yaml:"threshold"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// Shortcut is one canned trigger/answer pair. Order in the list is the
// match priority: the first trigger found in a question wins.
type Shortcut struct {
	Trigger string `yaml:"trigger"`
	Answer  string `yaml:"answer"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server       ServerConfig        `yaml:"server"`
	Knowledge    KnowledgeConfig     `yaml:"knowledge"`
	Retriever    RetrieverConfig     `yaml:"retriever"`
	Chat         ChatConfig          `yaml:"chat"`
	Embedder     *EmbedderConfig     `yaml:"embedder,omitempty"`
	VectorSearch *VectorSearchConfig `yaml:"vector_search,omitempty"`
	Shortcuts    []Shortcut          `yaml:"shortcuts"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "."
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Knowledge.Path == "" {
		cfg.Knowledge.Path = "knowledge_base.json"
	}
	if cfg.Retriever.Strategy == "" {
		cfg.Retriever.Strategy = "keyword"
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = 3
	}
	if cfg.Chat.APIKeyEnv == "" {
		cfg.Chat.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-3.5-turbo"
	}
	if cfg.Chat.TimeoutSecs == 0 {
		cfg.Chat.TimeoutSecs = 30
	}
	if cfg.Chat.MaxContextChars == 0 {
		cfg.Chat.MaxContextChars = 300
	}
	if cfg.Chat.MaxSentences == 0 {
		cfg.Chat.MaxSentences = 2
	}
	if cfg.Embedder != nil {
		if cfg.Embedder.BaseURL == "" {
			cfg.Embedder.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.APIKeyEnv == "" {
			cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.Model == "" {
			cfg.Embedder.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.TimeoutSecs == 0 {
			cfg.Embedder.TimeoutSecs = 30
		}
	}
	if cfg.VectorSearch != nil {
		if cfg.VectorSearch.APIKeyEnv == "" {
			cfg.VectorSearch.APIKeyEnv = "PINECONE_API_KEY"
		}
		if cfg.VectorSearch.Threshold == 0 {
			cfg.VectorSearch.Threshold = 0.6
		}
		if cfg.VectorSearch.TimeoutSecs == 0 {
			cfg.VectorSearch.TimeoutSecs = 15
		}
	}
	if len(cfg.Shortcuts) == 0 {
		cfg.Shortcuts = DefaultShortcuts()
	}
}

// DefaultShortcuts is the built-in canned-answer table, in match priority
// order. Triggers are matched as substrings of the lowercased question.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{"hello", "Hi! I help with FOSS-CIT info."},
		{"hi", "Hello! What FOSS-CIT info do you need?"},
		{"hey", "Hey! Ask me about FOSS-CIT."},
		{"what is foss-cit", "FOSS-CIT is a student organization at Coimbatore Institute of Technology that helps students learn open source technologies."},
		{"what is foss cit", "FOSS-CIT is a student organization at Coimbatore Institute of Technology that helps students learn open source technologies."},
		{"about foss-cit", "FOSS-CIT was founded by students at CIT to create a community for learning open source technologies."},
		{"foss-cit mission", "To help students learn essential technical skills and work with open-source platforms."},
		{"foss cit mission", "To help students learn essential technical skills and work with open-source platforms."},
		{"founded foss-cit", "FOSS-CIT was founded in 2018 by Dhileepan Thangamanimaran, Sai Adarsh, and Sibi Bose."},
		{"who founded foss-cit", "Dhileepan Thangamanimaran, Sai Adarsh, and Sibi Bose founded FOSS-CIT in 2018."},
		{"history of foss-cit", "FOSS-CIT was established in 2018 by three CIT students: Dhileepan Thangamanimaran, Sai Adarsh, and Sibi Bose."},
		{"founders of foss-cit", "The founders are Dhileepan Thangamanimaran, Sai Adarsh, and Sibi Bose."},
		{"who initiated foss-cit", "Dhileepan Thangamanimaran, Sai Adarsh, and Sibi Bose initiated FOSS-CIT in 2018."},
		{"who started foss-cit", "Dhileepan Thangamanimaran, Sai Adarsh, and Sibi Bose started FOSS-CIT."},
		{"what activities", "Bootcamps, workshops, coding contests, hackathons, and career guidance."},
		{"activities", "Bootcamps, workshops, coding contests, hackathons, and career guidance."},
		{"events", "Bootcamps, workshops, contests, webinars, and meet-ups."},
		{"programs", "Training bootcamps, workshops, coding contests, and interview prep."},
		{"training", "We offer bootcamps, workshops, and hands-on coding sessions."},
		{"how many members", "500+ active members."},
		{"members", "500+ active members."},
		{"achievements", "500+ members, training sessions, collaborations with Mozilla and Google."},
		{"contact", "Email: fosscit@gmail.com, Location: CIT Coimbatore."},
		{"location", "Department of Computing, CIT Coimbatore, Tamil Nadu."},
		{"email", "fosscit@gmail.com"},
		{"address", "CIT Coimbatore, Avinashi Road, Peelamedu, Tamil Nadu 641014."},
		{"team", "Tharun Kailash K (Lead), Vignaraj D, Shriram R."},
		{"who leads", "Tharun Kailash K is the team lead."},
		{"leader", "Tharun Kailash K is the team lead."},
		{"what can you do", "I provide quick FOSS-CIT info, events, and contact details."},
		{"who are you", "FOSS-CIT AI assistant for quick info."},
		{"help", "Ask about FOSS-CIT activities, team, or contact info."},
		{"what is programming", "Writing code to create software and applications."},
		{"how to start programming", "Start with Python, practice daily, build small projects."},
		{"career advice", "Learn one language well, build projects, practice regularly."},
		{"open source", "Free software that anyone can use, modify, and share."},
		{"what is open source", "Free software that anyone can use, modify, and share."},
	}
}
