package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/easelhq/easel/internal/events"
	"github.com/easelhq/easel/internal/fetch"
	"github.com/easelhq/easel/internal/media"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage the shared asset library",
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		assets, err := st.ListAssets(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(assets)
		} else {
			printAssetTable(assets)
		}
		return nil
	},
}

var assetAddCmd = &cobra.Command{
	Use:   "add <name> [src]",
	Short: "Add an asset to the library (dedup on name+src)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		var src string
		if len(args) == 2 {
			src = args[1]
		}

		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if src != "" {
				return fmt.Errorf("give either a src argument or --file, not both")
			}
			lib, err := media.New(filepath.Join(cfg.DataDir, "images"))
			if err != nil {
				return err
			}
			src, err = lib.ImportFile(file)
			if err != nil {
				return err
			}
		}
		if src == "" {
			return fmt.Errorf("an asset needs a src argument or --file")
		}

		tags, _ := cmd.Flags().GetStringSlice("tag")
		var metadata json.RawMessage
		if meta, _ := cmd.Flags().GetString("metadata"); meta != "" {
			if !json.Valid([]byte(meta)) {
				return fmt.Errorf("--metadata must be valid JSON")
			}
			metadata = json.RawMessage(meta)
		}

		asset, err := st.AddAsset(cmd.Context(), name, src, tags, metadata)
		if err != nil {
			return err
		}
		publish(events.TopicAssetAdded, events.AssetAdded{Asset: asset})

		if jsonOutput {
			printJSON(asset)
		} else {
			fmt.Printf("Asset %v (%s)\n", asset.ID, asset.Name)
		}
		return nil
	},
}

var assetRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete assets from the library",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			id, err := parseAssetID(arg)
			if err != nil {
				return err
			}
			if err := st.DeleteAsset(cmd.Context(), id); err != nil {
				return err
			}
			publish(events.TopicAssetDeleted, events.AssetDeleted{AssetID: id})
			fmt.Printf("Deleted asset %v\n", id)
		}
		return nil
	},
}

var assetUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a library asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAssetID(args[0])
		if err != nil {
			return err
		}

		// The library operation is a full-record replace, so start from
		// the stored entry and overlay the flags.
		assets, err := st.ListAssets(cmd.Context())
		if err != nil {
			return err
		}
		idx := -1
		for i := range assets {
			if assets[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("asset %v not found", id)
		}
		asset := assets[idx]

		if cmd.Flags().Changed("name") {
			asset.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("src") {
			asset.Src, _ = cmd.Flags().GetString("src")
		}
		if cmd.Flags().Changed("tag") {
			asset.Tags, _ = cmd.Flags().GetStringSlice("tag")
		}
		if cmd.Flags().Changed("metadata") {
			meta, _ := cmd.Flags().GetString("metadata")
			if !json.Valid([]byte(meta)) {
				return fmt.Errorf("--metadata must be valid JSON")
			}
			asset.Metadata = json.RawMessage(meta)
		}

		if err := st.UpdateAsset(cmd.Context(), asset); err != nil {
			return err
		}
		publish(events.TopicAssetUpdated, events.AssetUpdated{Asset: &asset})

		if jsonOutput {
			printJSON(asset)
		} else {
			fmt.Printf("Updated asset %v (%s)\n", asset.ID, asset.Name)
		}
		return nil
	},
}

var assetImportCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Fetch a web image into the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = filepath.Base(url)
		}

		client := fetch.New(cfg.FetchTimeout, cfg.FetchUserAgent)
		src, err := client.DataURI(cmd.Context(), url)
		if err != nil {
			return err
		}

		tags, _ := cmd.Flags().GetStringSlice("tag")
		asset, err := st.AddAsset(cmd.Context(), name, src, tags, nil)
		if err != nil {
			return err
		}
		publish(events.TopicAssetAdded, events.AssetAdded{Asset: asset})

		if jsonOutput {
			printJSON(asset)
		} else {
			fmt.Printf("Imported asset %v (%s)\n", asset.ID, asset.Name)
		}
		return nil
	},
}

func init() {
	assetAddCmd.Flags().StringSlice("tag", nil, "tag for the asset (repeatable)")
	assetAddCmd.Flags().String("metadata", "", "opaque JSON metadata")
	assetAddCmd.Flags().String("file", "", "import a local file into the images dir and use its path as src")

	assetUpdateCmd.Flags().String("name", "", "new name")
	assetUpdateCmd.Flags().String("src", "", "new source")
	assetUpdateCmd.Flags().StringSlice("tag", nil, "replace tags (repeatable)")
	assetUpdateCmd.Flags().String("metadata", "", "replace opaque JSON metadata")

	assetImportCmd.Flags().String("name", "", "asset name (default: last URL segment)")
	assetImportCmd.Flags().StringSlice("tag", nil, "tag for the asset (repeatable)")

	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetRmCmd)
	assetCmd.AddCommand(assetUpdateCmd)
	assetCmd.AddCommand(assetImportCmd)
}
