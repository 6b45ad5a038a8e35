package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bgColor, _ := cmd.Flags().GetString("bg-color")

		board, err := st.CreateBoard(cmd.Context(), args[0], bgColor)
		if err != nil {
			return err
		}
		publish(events.TopicBoardCreated, events.BoardCreated{Board: board})

		if jsonOutput {
			printJSON(board)
		} else {
			fmt.Printf("Created board %d (%s)\n", board.ID, board.Name)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().String("bg-color", "#ffffff", "board background color")
}
