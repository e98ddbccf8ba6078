package app

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kart-io/version"
)

const (
	// Name is the name of the application.
	Name = "fantasy-chatbot"

	description = `NBA Fantasy Chatbot

An intent-routed RAG service for fantasy basketball questions.

This server provides:
  - Intent classification (trade, stats, greeting, general)
  - Vector retrieval over player and team stat documents
  - Prompt-template answer synthesis with an LLM
  - Atomic index rebuilds from weekly stat files`
)

// NewCommand builds the root command with the serve behavior and the
// index subcommand.
func NewCommand() *cobra.Command {
	opts := NewOptions()
	var configFile string

	cmd := &cobra.Command{
		Use:          Name,
		Short:        "NBA fantasy basketball chatbot service",
		Long:         description,
		SilenceUsage: true,
		Version:      version.Get().GitVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd.Flags(), opts, configFile); err != nil {
				return err
			}
			srv, err := NewServer(opts)
			if err != nil {
				return err
			}
			return srv.Run()
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file.")
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newIndexCommand(opts, &configFile))

	return cmd
}

func newIndexCommand(opts *Options, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:          "index",
		Short:        "Rebuild the retrieval index from the stat files and exit",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd.Root().PersistentFlags(), opts, *configFile); err != nil {
				return err
			}
			srv, err := NewServer(opts)
			if err != nil {
				return err
			}
			count, err := srv.RebuildIndex(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Indexed %d documents\n", count)
			return nil
		},
	}
}

// loadConfig layers configuration: defaults, then the config file, then
// explicitly set flags. Flags are re-applied after unmarshaling so the
// command line always wins over the file.
func loadConfig(fs *pflag.FlagSet, opts *Options, configFile string) error {
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if err := v.Unmarshal(opts); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}

		var flagErr error
		fs.Visit(func(f *pflag.Flag) {
			if err := fs.Set(f.Name, f.Value.String()); err != nil && flagErr == nil {
				flagErr = err
			}
		})
		if flagErr != nil {
			return flagErr
		}
	}

	if err := opts.Complete(); err != nil {
		return err
	}
	return opts.Validate()
}
