package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func formatMillis(ms uint64) string {
	return time.UnixMilli(int64(ms)).Format("2006-01-02 15:04:05")
}

func printMetaTable(metas []model.BoardMetadata) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBG\tUPDATED")
	for _, m := range metas {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			m.ID,
			ui.RenderName(m.Name),
			m.BgColor,
			ui.RenderMuted(formatMillis(m.UpdatedAt)),
		)
	}
	w.Flush()
	fmt.Printf("\n%d boards\n", len(metas))
}

func printBoard(b *model.Board) {
	fmt.Printf("ID:        %d\n", b.ID)
	fmt.Printf("Name:      %s\n", ui.RenderName(b.Name))
	fmt.Printf("BG Color:  %s\n", b.BgColor)
	fmt.Printf("Layers:    %d\n", len(b.Layers))
	fmt.Printf("Assets:    %d\n", len(b.Assets))
	if b.Thumbnail != nil {
		fmt.Printf("Thumbnail: %s\n", truncate(*b.Thumbnail, 40))
	}
	fmt.Printf("Created:   %s\n", ui.RenderMuted(formatMillis(b.CreatedAt)))
	fmt.Printf("Updated:   %s\n", ui.RenderMuted(formatMillis(b.UpdatedAt)))
	for _, a := range b.Assets {
		fmt.Printf("  asset %s  %s\n", strconv.FormatFloat(a.ID, 'f', -1, 64), ui.RenderName(a.Name))
	}
}

func printAssetTable(assets []model.Asset) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTAGS\tSRC")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			strconv.FormatFloat(a.ID, 'f', -1, 64),
			ui.RenderName(a.Name),
			ui.RenderTag(strings.Join(a.Tags, ",")),
			ui.RenderMuted(truncate(a.Src, 48)),
		)
	}
	w.Flush()
	fmt.Printf("\n%d assets\n", len(assets))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func parseBoardID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid board id %q", arg)
	}
	return id, nil
}

func parseAssetID(arg string) (float64, error) {
	id, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid asset id %q", arg)
	}
	return id, nil
}
