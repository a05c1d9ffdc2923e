package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/horo-ai/horo/internal/api"
	"github.com/horo-ai/horo/internal/chat"
	"github.com/horo-ai/horo/internal/config"
	"github.com/horo-ai/horo/internal/embedding"
	"github.com/horo-ai/horo/internal/llm"
	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/internal/rag/pipeline"
	"github.com/horo-ai/horo/internal/rag/splitters"
	"github.com/horo-ai/horo/internal/rag/storages/docstore"
	"github.com/horo-ai/horo/internal/rag/storages/vectorstore"
	"github.com/horo-ai/horo/pkg/logger"
	"github.com/horo-ai/horo/pkg/ratelimiter"
)

func main() {
	// 1. Load configuration
	configPath := os.Getenv("HORO_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger.Init(logger.ParseLevel(cfg.Logger.Level))
	appLogger := logger.New(cfg.App.Name, "", "")
	appLogger.Info("Starting Horo RAG service...")

	// 3. Build providers
	baseEmbedder, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("Failed to create embedding client: %v", err))
	}
	embedder := embedding.NewCachedModel(baseEmbedder, cfg.Embedding.CacheSize)

	baseGenerator, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("Failed to create LLM client: %v", err))
	}
	generator := llm.WithBreaker(baseGenerator)

	var vectorStore interfaces.VectorStore
	switch cfg.VectorStore.Provider {
	case "memory":
		vectorStore = vectorstore.NewInMemoryStore()
	case "milvus":
		milvusStore, err := vectorstore.NewMilvusStore(
			context.Background(),
			cfg.VectorStore.Milvus.Address,
			cfg.VectorStore.Milvus.Collection,
			cfg.VectorStore.Milvus.Dimension,
			appLogger,
		)
		if err != nil {
			appLogger.Fatal(fmt.Sprintf("Failed to connect to Milvus: %v", err))
		}
		defer milvusStore.Close()
		vectorStore = milvusStore
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported vector store provider: %s", cfg.VectorStore.Provider))
	}

	var splitter interfaces.Splitter
	switch cfg.Splitter.Kind {
	case "sentence":
		splitter = splitters.NewSentenceSplitter(cfg.Splitter.ChunkSize, cfg.Splitter.ChunkOverlap)
	case "token":
		splitter, err = splitters.NewTokenSplitter(cfg.Splitter.ChunkSize, cfg.Splitter.ChunkOverlap)
		if err != nil {
			appLogger.Fatal(fmt.Sprintf("Failed to create token splitter: %v", err))
		}
	default:
		appLogger.Fatal(fmt.Sprintf("Unsupported splitter kind: %s", cfg.Splitter.Kind))
	}

	// 4. Assemble pipelines and the chat service
	docStore := docstore.NewInMemoryDocStore()
	indexingPipeline := pipeline.NewIndexingPipeline(splitter, embedder, docStore, vectorStore, appLogger)
	retrievalPipeline := pipeline.NewRetrievalPipeline(embedder, vectorStore, docStore, appLogger)
	qaPipeline := pipeline.NewQAPipeline(generator, appLogger)

	providerTimeout, err := time.ParseDuration(cfg.Chat.ProviderTimeout)
	if err != nil {
		appLogger.Fatal(fmt.Sprintf("Invalid chat.providerTimeout: %v", err))
	}

	service := chat.NewService(
		chat.NewTenantStore(),
		indexingPipeline,
		retrievalPipeline,
		qaPipeline,
		cfg.Chat.TopK,
		providerTimeout,
		appLogger,
	)

	// 5. Start the HTTP server
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	var limiter *ratelimiter.PerTenant
	if cfg.Server.RateLimitRPS > 0 {
		limiter = ratelimiter.NewPerTenant(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	}
	router := api.SetupRouter(api.NewHandler(service, appLogger), limiter)

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	go func() {
		appLogger.Info(fmt.Sprintf("HTTP server listening at %s", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal(fmt.Sprintf("Failed to serve HTTP: %v", err))
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(fmt.Sprintf("Server shutdown failed: %v", err))
	}
	appLogger.Info("Server gracefully stopped")
}
