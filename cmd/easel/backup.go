package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot all boards, assets and tag presets as JSONL",
	Long: `Snapshot all boards, assets and tag presets as JSONL. Destinations are
--out, the backup.file config value, and an S3 bucket when backup.s3_bucket
is configured. With --every (or a configured backup.interval) the command
keeps running and re-exports on each tick until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var dests []backup.Destination
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			dests = append(dests, backup.NewFileDestination(out))
		}
		if cfg.BackupFile != "" {
			dests = append(dests, backup.NewFileDestination(cfg.BackupFile))
		}
		if cfg.BackupS3Bucket != "" {
			s3Dest, err := backup.NewS3Destination(ctx, backup.S3Options{
				Bucket:   cfg.BackupS3Bucket,
				Key:      cfg.BackupS3Key,
				Region:   cfg.BackupS3Region,
				Endpoint: cfg.BackupS3Endpoint,
			})
			if err != nil {
				return err
			}
			dests = append(dests, s3Dest)
		}
		if len(dests) == 0 {
			return fmt.Errorf("no backup destination: pass --out or configure backup.file / backup.s3_bucket")
		}

		interval := cfg.BackupInterval
		if cmd.Flags().Changed("every") {
			interval, _ = cmd.Flags().GetDuration("every")
		}

		if interval <= 0 {
			if err := backup.Run(ctx, st, dests); err != nil {
				return err
			}
			fmt.Printf("Backed up to %d destination(s)\n", len(dests))
			return nil
		}

		scheduler := backup.NewScheduler(st, dests, interval, logger)
		scheduler.Start()
		logger.Info("periodic backup running", "interval", interval, "destinations", len(dests))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		scheduler.Stop()
		return nil
	},
}

func init() {
	backupCmd.Flags().String("out", "", "write the snapshot to a local file")
	backupCmd.Flags().Duration("every", time.Duration(0), "keep running, re-exporting at this interval")
}
