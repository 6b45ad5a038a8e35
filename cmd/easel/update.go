package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
	"github.com/easelhq/easel/internal/model"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Apply a partial update to a board",
	Long: `Apply a partial update to a board. Only the fields given are changed;
--patch reads a full update record (JSON, lowerCamelCase fields) from a
file, with explicit flags taking precedence over patch values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseBoardID(args[0])
		if err != nil {
			return err
		}

		var upd model.BoardUpdate
		if patchFile, _ := cmd.Flags().GetString("patch"); patchFile != "" {
			data, err := os.ReadFile(patchFile)
			if err != nil {
				return fmt.Errorf("read patch file: %w", err)
			}
			if err := json.Unmarshal(data, &upd); err != nil {
				return fmt.Errorf("parse patch file: %w", err)
			}
		}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			upd.Name = &name
		}
		if cmd.Flags().Changed("bg-color") {
			bg, _ := cmd.Flags().GetString("bg-color")
			upd.BgColor = &bg
		}
		if cmd.Flags().Changed("thumbnail") {
			thumb, _ := cmd.Flags().GetString("thumbnail")
			upd.Thumbnail = &thumb
		}

		board, err := st.UpdateBoard(cmd.Context(), id, upd)
		if err != nil {
			return err
		}
		publish(events.TopicBoardUpdated, events.BoardUpdated{Board: board})

		if jsonOutput {
			printJSON(board)
		} else {
			fmt.Printf("Updated board %d (%s)\n", board.ID, board.Name)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().String("name", "", "rename the board (relocates its file)")
	updateCmd.Flags().String("bg-color", "", "set the background color")
	updateCmd.Flags().String("thumbnail", "", "set the thumbnail payload")
	updateCmd.Flags().String("patch", "", "JSON file with a full update record")
}
