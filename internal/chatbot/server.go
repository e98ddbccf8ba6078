package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/biz"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/handler"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/router"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/store"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/pkg/evaluator"
	"github.com/kart-io/version"

	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/component/milvus"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"

	// Register LLM providers.
	_ "github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm/gemini"
	_ "github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm/ollama"
	_ "github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm/openai"
)

// Server is the assembled chatbot service.
type Server struct {
	opts        *Options
	httpServer  *http.Server
	service     biz.Service
	milvusClose func()
	redisClose  func()
}

// NewServer initializes every layer and returns a ready-to-run Server.
func NewServer(opts *Options) (*Server, error) {
	printBanner(opts)

	opts.Log.AddInitialField("service.name", Name)
	opts.Log.AddInitialField("service.version", version.Get().GitVersion)
	if err := opts.Log.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting chatbot service...")

	milvusClient, err := milvus.New(opts.Milvus)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize milvus: %w", err)
	}
	logger.Info("Milvus client initialized")

	vectorStore := store.NewMilvusStore(milvusClient)
	logger.Info("Vector store initialized")

	queryCache, redisClose := newQueryCache(opts.Cache)

	embedProvider, err := llm.NewEmbeddingProvider(opts.Embedding.Provider, opts.Embedding.ToConfigMap())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedding provider: %w", err)
	}
	logger.Infow("Embedding provider initialized",
		"provider", opts.Embedding.Provider,
		"model", opts.Embedding.Model,
	)

	chatProvider, err := llm.NewChatProvider(opts.Chat.Provider, opts.Chat.ToConfigMap())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat provider: %w", err)
	}
	logger.Infow("Chat provider initialized",
		"provider", opts.Chat.Provider,
		"model", opts.Chat.Model,
	)

	serviceConfig := &biz.ServiceConfig{
		IndexerConfig: &biz.IndexerConfig{
			Alias:           opts.Chatbot.Collection,
			EmbeddingDim:    opts.Chatbot.EmbeddingDim,
			BatchSize:       opts.Chatbot.IndexBatchSize,
			PlayersFile:     opts.Chatbot.PlayersFile,
			WeeklyStatsFile: opts.Chatbot.WeeklyStatsFile,
		},
		RetrieverConfig: &biz.RetrieverConfig{
			TopK:       opts.Chatbot.TopK,
			Collection: opts.Chatbot.Collection,
		},
		QueryCacheConfig: &biz.QueryCacheConfig{
			Enabled:   opts.Cache.Enabled,
			TTL:       opts.Cache.TTL,
			KeyPrefix: opts.Cache.KeyPrefix,
		},
	}
	chatService := biz.NewChatService(vectorStore, embedProvider, chatProvider, queryCache, serviceConfig)
	logger.Infow("Chat service initialized",
		"collection", opts.Chatbot.Collection,
		"top_k", opts.Chatbot.TopK,
		"cache.enabled", opts.Cache.Enabled,
	)

	chatEvaluator := evaluator.New(chatProvider, embedProvider)
	chatHandler := handler.NewChatHandler(chatService, chatEvaluator)
	logger.Info("Handler layer initialized")

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	router.Register(engine, chatHandler)

	httpServer := &http.Server{
		Addr:         opts.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  opts.HTTP.ReadTimeout,
		WriteTimeout: opts.HTTP.WriteTimeout,
		IdleTimeout:  opts.HTTP.IdleTimeout,
	}

	logger.Info("Chatbot service is ready")
	return &Server{
		opts:        opts,
		httpServer:  httpServer,
		service:     chatService,
		milvusClose: func() { _ = milvusClient.Close(context.Background()) },
		redisClose:  redisClose,
	}, nil
}

// newQueryCache connects to Redis when the cache is enabled. A Redis that
// cannot be reached disables the cache instead of failing startup.
func newQueryCache(opts *CacheOptions) (*biz.QueryCache, func()) {
	if !opts.Enabled {
		logger.Info("Cache is disabled")
		return nil, nil
	}

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", opts.Redis.Host, opts.Redis.Port),
		Password:     opts.Redis.Password,
		DB:           opts.Redis.Database,
		MaxRetries:   opts.Redis.MaxRetries,
		PoolSize:     opts.Redis.PoolSize,
		MinIdleConns: opts.Redis.MinIdleConns,
		DialTimeout:  opts.Redis.DialTimeout,
		ReadTimeout:  opts.Redis.ReadTimeout,
		WriteTimeout: opts.Redis.WriteTimeout,
		PoolTimeout:  opts.Redis.PoolTimeout,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warnw("failed to connect to redis, cache will be disabled", "error", err.Error())
		_ = redisClient.Close()
		return nil, nil
	}

	queryCache := biz.NewQueryCache(redisClient, &biz.QueryCacheConfig{
		Enabled:   true,
		TTL:       opts.TTL,
		KeyPrefix: opts.KeyPrefix,
	})
	logger.Infow("Redis cache initialized",
		"host", opts.Redis.Host,
		"port", opts.Redis.Port,
		"ttl", opts.TTL,
	)
	return queryCache, func() { _ = redisClient.Close() }
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	defer func() {
		if s.milvusClose != nil {
			s.milvusClose()
		}
		if s.redisClose != nil {
			s.redisClose()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		logger.Infow("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// RebuildIndex rebuilds the retrieval index once and exits. Used by the
// index subcommand.
func (s *Server) RebuildIndex(ctx context.Context) (int, error) {
	defer func() {
		if s.milvusClose != nil {
			s.milvusClose()
		}
		if s.redisClose != nil {
			s.redisClose()
		}
	}()
	return s.service.Rebuild(ctx)
}

func printBanner(opts *Options) {
	fmt.Printf("Starting %s...\n", Name)
	fmt.Printf("  Embedding: %s (%s)\n", opts.Embedding.Provider, opts.Embedding.Model)
	fmt.Printf("  Chat: %s (%s)\n", opts.Chat.Provider, opts.Chat.Model)
	fmt.Printf("  Collection: %s (top-k %d)\n", opts.Chatbot.Collection, opts.Chatbot.TopK)
}
