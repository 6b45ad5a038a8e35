package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
	"github.com/easelhq/easel/internal/ui"
)

var tagsCmd = &cobra.Command{
	Use:   "tags [tag]...",
	Short: "Show tag presets, or replace them when tags are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			if err := st.SaveTagPresets(cmd.Context(), args); err != nil {
				return err
			}
			publish(events.TopicTagPresetsSaved, events.TagPresetsSaved{Presets: args})
			fmt.Printf("Saved %d tag presets\n", len(args))
			return nil
		}

		presets, err := st.TagPresets(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(presets)
			return nil
		}
		for _, p := range presets {
			fmt.Println(ui.RenderTag(p))
		}
		return nil
	},
}
