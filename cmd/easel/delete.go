package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more boards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			id, err := parseBoardID(arg)
			if err != nil {
				return err
			}
			if err := st.DeleteBoard(cmd.Context(), id); err != nil {
				return err
			}
			publish(events.TopicBoardDeleted, events.BoardDeleted{BoardID: id})
			fmt.Printf("Deleted board %d\n", id)
		}
		return nil
	},
}
