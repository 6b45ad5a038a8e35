package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
)

var removeAssetCmd = &cobra.Command{
	Use:   "remove-asset <board-id> <asset-id>",
	Short: "Remove a board-local asset from a board",
	Long: `Remove a board-local asset from a board. This only affects the copy
embedded in the board; the shared library entry (if any) is untouched —
use "easel asset rm" for that.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		boardID, err := parseBoardID(args[0])
		if err != nil {
			return err
		}
		assetID, err := parseAssetID(args[1])
		if err != nil {
			return err
		}

		board, err := st.RemoveBoardAsset(cmd.Context(), boardID, assetID)
		if err != nil {
			return err
		}
		publish(events.TopicBoardAssetRemoved, events.BoardAssetRemoved{Board: board, AssetID: assetID})

		if jsonOutput {
			printJSON(board)
		} else {
			fmt.Printf("Board %d now holds %d assets\n", board.ID, len(board.Assets))
		}
		return nil
	},
}
