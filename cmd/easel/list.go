package main

import (
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		metas, err := st.ListBoards(cmd.Context())
		if err != nil {
			return err
		}
		// The store returns directory-iteration order; most recently
		// touched first reads better here.
		sort.Slice(metas, func(i, j int) bool {
			return metas[i].UpdatedAt > metas[j].UpdatedAt
		})

		if jsonOutput {
			printJSON(metas)
		} else {
			printMetaTable(metas)
		}
		return nil
	},
}
