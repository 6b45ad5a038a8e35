package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBoardID(args[0])
		if err != nil {
			return err
		}
		board, err := st.GetBoard(cmd.Context(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(board)
		} else {
			printBoard(board)
		}
		return nil
	},
}
