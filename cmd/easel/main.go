// Command easel manages moodboard data: boards stored one JSON file each,
// a shared asset library, tag presets, media imports and backups.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/config"
	"github.com/easelhq/easel/internal/events"
	"github.com/easelhq/easel/internal/store/fsjson"
	"github.com/easelhq/easel/internal/ui"
)

var (
	configPath string
	dataDir    string
	jsonOutput bool
	noColor    bool

	cfg       *config.Config
	st        *fsjson.Store
	publisher events.Publisher
	logger    *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "easel",
	Short: "Moodboard storage: boards, shared assets, tags, backups",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		if noColor || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		st, err = fsjson.New(cfg.DataDir, logger)
		if err != nil {
			return err
		}

		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				st.Close()
				return err
			}
			publisher = pub
		} else {
			publisher = &events.NoopPublisher{}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if publisher != nil {
			publisher.Close()
		}
		if st != nil {
			st.Close()
		}
	},
}

// publish emits a change event. Event delivery is best-effort: a failed
// publish is logged, never fails the command that already persisted.
func publish(topic string, event any) {
	if err := publisher.Publish(context.Background(), topic, event); err != nil {
		logger.Warn("publishing event", "topic", topic, "err", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(removeAssetCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
