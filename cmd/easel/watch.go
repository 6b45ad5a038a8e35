package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change events from NATS",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.NATSURL == "" {
			return fmt.Errorf("watch needs events: set nats_url or EASEL_NATS_URL")
		}
		topic, _ := cmd.Flags().GetString("topic")

		sub, err := events.NewNATSSubscriber(cfg.NATSURL)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return err
		}
		defer cancel()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

		fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", topic)
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				fmt.Println(string(msg))
			case <-sig:
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().String("topic", "easel.>", "NATS subject to subscribe to (supports wildcards)")
}
