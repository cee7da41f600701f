package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/medAmineRg/chatbot-service/config"
	"github.com/medAmineRg/chatbot-service/internal/chat"
	"github.com/medAmineRg/chatbot-service/internal/chunker"
	"github.com/medAmineRg/chatbot-service/internal/db"
	"github.com/medAmineRg/chatbot-service/internal/documents"
	"github.com/medAmineRg/chatbot-service/internal/embeddings"
	"github.com/medAmineRg/chatbot-service/internal/httpapi"
	"github.com/medAmineRg/chatbot-service/internal/llm"
	"github.com/medAmineRg/chatbot-service/internal/logger"
	"github.com/medAmineRg/chatbot-service/internal/memory"
	"github.com/medAmineRg/chatbot-service/internal/ollama"
	"github.com/medAmineRg/chatbot-service/internal/rag"
	"github.com/medAmineRg/chatbot-service/internal/services"
	"github.com/medAmineRg/chatbot-service/internal/telegram"
	"github.com/medAmineRg/chatbot-service/internal/tools"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "Path to the YAML config file")
	)
	flag.Parse()

	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.Database.ConnectionString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Model providers: one completer and one embedding provider, picked
	// by config.
	var (
		completer llm.Completer
		provider  embeddings.Provider
	)
	switch cfg.Provider {
	case "ollama":
		client := ollama.NewClient(cfg.Ollama.BaseURL)
		completer = llm.NewOllamaClient(client, cfg.Ollama.ChatModel)
		provider = embeddings.NewOllamaProvider(client, cfg.Ollama.EmbeddingModel)
	default:
		completer = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.ChatModel)
		provider = embeddings.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)
	}
	gateway := embeddings.NewGateway(provider, log)

	index := rag.NewIndex(database, gateway, cfg.Processing.TopK)
	pipeline := documents.NewPipeline(
		database,
		documents.NewPDFParser(),
		chunker.New(cfg.Processing.ChunkSize, cfg.Processing.ChunkOverlap),
		gateway,
		log,
	)
	history := memory.New(database)

	dispatcher := tools.NewDispatcher(
		services.NewCustomerClient(cfg.Services.CustomersURL),
		services.NewProductClient(cfg.Services.ProductsURL),
		services.NewBillClient(cfg.Services.BillsURL),
		log,
	)

	assembler := chat.NewAssembler(index, history, dispatcher, cfg.Processing.HistoryLimit)
	service := chat.NewService(history, assembler, completer, pipeline, database, log)

	// HTTP surface runs alongside the bot.
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httpapi.New(service, dispatcher, log),
	}
	go func() {
		log.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server stopped", "error", err)
			stop()
		}
	}()
	defer httpServer.Shutdown(context.Background())

	if cfg.Telegram.BotToken == "" {
		log.Warn("no telegram bot token configured, serving HTTP only")
		<-ctx.Done()
		return nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create telegram client: %w", err)
	}

	bot := telegram.New(api, service, log)
	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("bot stopped: %w", err)
	}
	return nil
}
