// Package config loads application configuration from a YAML file with
// environment overrides for secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/medAmineRg/chatbot-service/internal/chunker"
	"github.com/medAmineRg/chatbot-service/internal/embeddings"
	"github.com/medAmineRg/chatbot-service/internal/llm"
	"github.com/medAmineRg/chatbot-service/internal/rag"
)

// Config holds application configuration
type Config struct {
	Database struct {
		ConnectionString string `yaml:"connection_string"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Provider string `yaml:"provider"` // "openai" or "ollama"
	OpenAI   struct {
		APIKey         string `yaml:"api_key"`
		ChatModel      string `yaml:"chat_model"`
		EmbeddingModel string `yaml:"embedding_model"`
	} `yaml:"openai"`
	Ollama struct {
		BaseURL        string `yaml:"base_url"`
		ChatModel      string `yaml:"chat_model"`
		EmbeddingModel string `yaml:"embedding_model"`
	} `yaml:"ollama"`
	Services struct {
		CustomersURL string `yaml:"customers_url"`
		ProductsURL  string `yaml:"products_url"`
		BillsURL     string `yaml:"bills_url"`
	} `yaml:"services"`
	Processing struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
		TopK         int `yaml:"top_k"`
		HistoryLimit int `yaml:"history_limit"`
	} `yaml:"processing"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load loads configuration from an optional file path, fills defaults,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv lets secrets come from the environment so they stay out of
// config files.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.ConnectionString = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{}

	cfg.Database.ConnectionString = "postgres://postgres@localhost/postgres?sslmode=disable"
	cfg.HTTP.Addr = ":8080"
	cfg.Provider = "openai"
	cfg.OpenAI.ChatModel = llm.DefaultOpenAIModel
	cfg.OpenAI.EmbeddingModel = embeddings.DefaultOpenAIModel
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Ollama.ChatModel = "llama3.2"
	cfg.Ollama.EmbeddingModel = embeddings.DefaultOllamaModel
	cfg.Services.CustomersURL = "http://localhost:8081"
	cfg.Services.ProductsURL = "http://localhost:8082"
	cfg.Services.BillsURL = "http://localhost:8083"
	cfg.Processing.ChunkSize = chunker.DefaultChunkSize
	cfg.Processing.ChunkOverlap = chunker.DefaultChunkOverlap
	cfg.Processing.TopK = rag.DefaultTopK
	cfg.Processing.HistoryLimit = 10
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"

	return cfg
}
