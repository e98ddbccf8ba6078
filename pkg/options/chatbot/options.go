// Package chatbot provides chatbot pipeline configuration options.
package chatbot

import (
	"fmt"

	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/options"
	"github.com/spf13/pflag"
)

var _ options.IOptions = (*Options)(nil)

// Options contains chatbot pipeline configuration.
type Options struct {
	// TopK is the number of documents to retrieve per query.
	TopK int `json:"top-k" mapstructure:"top-k"`

	// Collection is the published collection alias queries read from.
	Collection string `json:"collection" mapstructure:"collection"`

	// EmbeddingDim is the dimension of embedding vectors.
	EmbeddingDim int `json:"embedding-dim" mapstructure:"embedding-dim"`

	// PlayersFile is the path to the player stats JSON file.
	PlayersFile string `json:"players-file" mapstructure:"players-file"`

	// WeeklyStatsFile is the path to the weekly team stats JSON file.
	WeeklyStatsFile string `json:"weekly-stats-file" mapstructure:"weekly-stats-file"`

	// IndexBatchSize is the number of documents embedded per batch during indexing.
	IndexBatchSize int `json:"index-batch-size" mapstructure:"index-batch-size"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		TopK:            10,
		Collection:      "fantasy_docs",
		EmbeddingDim:    768,
		PlayersFile:     "data/players.json",
		WeeklyStatsFile: "data/weekly_stats.json",
		IndexBatchSize:  64,
	}
}

// AddFlags adds flags for chatbot options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.IntVar(&o.TopK, options.Join(prefixes...)+"chatbot.top-k", o.TopK, "Number of documents retrieved per query.")
	fs.StringVar(&o.Collection, options.Join(prefixes...)+"chatbot.collection", o.Collection, "Published collection alias for queries.")
	fs.IntVar(&o.EmbeddingDim, options.Join(prefixes...)+"chatbot.embedding-dim", o.EmbeddingDim, "Embedding vector dimension.")
	fs.StringVar(&o.PlayersFile, options.Join(prefixes...)+"chatbot.players-file", o.PlayersFile, "Path to the player stats JSON file.")
	fs.StringVar(&o.WeeklyStatsFile, options.Join(prefixes...)+"chatbot.weekly-stats-file", o.WeeklyStatsFile, "Path to the weekly team stats JSON file.")
	fs.IntVar(&o.IndexBatchSize, options.Join(prefixes...)+"chatbot.index-batch-size", o.IndexBatchSize, "Documents embedded per batch during indexing.")
}

// Validate validates the chatbot options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.TopK <= 0 {
		errs = append(errs, fmt.Errorf("top-k must be positive"))
	}
	if o.Collection == "" {
		errs = append(errs, fmt.Errorf("collection is required"))
	}
	if o.EmbeddingDim <= 0 {
		errs = append(errs, fmt.Errorf("embedding-dim must be positive"))
	}
	if o.IndexBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("index-batch-size must be positive"))
	}
	return errs
}
