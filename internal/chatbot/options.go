// Package app provides the NBA fantasy chatbot application.
package app

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	chatbotopts "github.com/kaannerenn/nba-fantasy-chatbot/pkg/options/chatbot"
	llmopts "github.com/kaannerenn/nba-fantasy-chatbot/pkg/options/llm"
	logopts "github.com/kaannerenn/nba-fantasy-chatbot/pkg/options/logger"
	milvusopts "github.com/kaannerenn/nba-fantasy-chatbot/pkg/options/milvus"
	redisopts "github.com/kaannerenn/nba-fantasy-chatbot/pkg/options/redis"
	httpopts "github.com/kaannerenn/nba-fantasy-chatbot/pkg/options/server/http"
)

// Options contains all chatbot service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Milvus contains Milvus database configuration.
	Milvus *milvusopts.Options `json:"milvus" mapstructure:"milvus"`

	// Embedding contains embedding provider configuration.
	Embedding *llmopts.ProviderOptions `json:"embedding" mapstructure:"embedding"`

	// Chat contains chat provider configuration.
	Chat *llmopts.ProviderOptions `json:"chat" mapstructure:"chat"`

	// Chatbot contains pipeline configuration.
	Chatbot *chatbotopts.Options `json:"chatbot" mapstructure:"chatbot"`

	// Cache contains query cache configuration.
	Cache *CacheOptions `json:"cache" mapstructure:"cache"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// CacheOptions contains query cache configuration.
type CacheOptions struct {
	// Enabled turns the Redis query cache on.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// TTL is the cache entry lifetime.
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`

	// KeyPrefix namespaces the cache keys.
	KeyPrefix string `json:"key-prefix" mapstructure:"key-prefix"`

	// Redis contains the Redis connection configuration.
	Redis *redisopts.Options `json:"redis" mapstructure:"redis"`
}

// NewCacheOptions creates default cache options. The cache is off by
// default so a missing Redis never blocks startup.
func NewCacheOptions() *CacheOptions {
	return &CacheOptions{
		Enabled:   false,
		TTL:       1 * time.Hour,
		KeyPrefix: "chat:query:",
		Redis:     redisopts.NewOptions(),
	}
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:            httpopts.NewOptions(),
		Log:             logopts.NewOptions(),
		Milvus:          milvusopts.NewOptions(),
		Embedding:       llmopts.NewEmbeddingOptions(),
		Chat:            llmopts.NewChatOptions(),
		Chatbot:         chatbotopts.NewOptions(),
		Cache:           NewCacheOptions(),
		ShutdownTimeout: 10 * time.Second,
	}
}

// AddFlags adds all service flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Milvus.AddFlags(fs)
	o.Embedding.AddFlags(fs, "embedding")
	o.Chat.AddFlags(fs, "chat")
	o.Chatbot.AddFlags(fs)
	o.addCacheFlags(fs)

	fs.DurationVar(&o.ShutdownTimeout, "shutdown-timeout", o.ShutdownTimeout, "Graceful shutdown timeout.")
}

func (o *Options) addCacheFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Cache.Enabled, "cache.enabled", o.Cache.Enabled, "Enable query result cache")
	fs.DurationVar(&o.Cache.TTL, "cache.ttl", o.Cache.TTL, "Cache TTL duration")
	fs.StringVar(&o.Cache.KeyPrefix, "cache.key-prefix", o.Cache.KeyPrefix, "Cache key prefix")
	o.Cache.Redis.AddFlags(fs)
}

// Validate validates all option groups and reports every problem at once.
func (o *Options) Validate() error {
	var errs []error

	if err := o.Log.Validate(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, o.HTTP.Validate()...)
	errs = append(errs, o.Milvus.Validate()...)
	for _, err := range o.Embedding.Validate() {
		errs = append(errs, fmt.Errorf("embedding: %w", err))
	}
	for _, err := range o.Chat.Validate() {
		errs = append(errs, fmt.Errorf("chat: %w", err))
	}
	errs = append(errs, o.Chatbot.Validate()...)
	if o.Cache.Enabled {
		if err := o.Cache.Redis.Validate(); err != nil {
			errs = append(errs, err)
		}
		if o.Cache.TTL <= 0 {
			errs = append(errs, fmt.Errorf("cache.ttl must be positive"))
		}
	}

	return utilerrors.NewAggregate(errs)
}

// Complete completes the options with computed defaults.
func (o *Options) Complete() error {
	if err := o.Embedding.Complete(); err != nil {
		return err
	}
	return o.Chat.Complete()
}

// GetTimeout returns a timeout that covers the slowest provider call.
func (o *Options) GetTimeout() time.Duration {
	if o.Chat.Timeout > o.Embedding.Timeout {
		return o.Chat.Timeout
	}
	return o.Embedding.Timeout
}
