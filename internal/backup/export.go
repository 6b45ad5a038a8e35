package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version    string    `json:"version"`
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	BoardCount int       `json:"board_count"`
	AssetCount int       `json:"asset_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes a full snapshot of the store as JSONL to w: one header
// record, one record per board (full document, sorted by id), one per
// shared library asset, and one holding the tag presets.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	metas, err := s.ListBoards(ctx)
	if err != nil {
		return fmt.Errorf("list boards: %w", err)
	}

	boards := make([]*model.Board, 0, len(metas))
	for _, m := range metas {
		b, err := s.GetBoard(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("get board %d: %w", m.ID, err)
		}
		boards = append(boards, b)
	}
	sort.Slice(boards, func(i, j int) bool {
		return boards[i].ID < boards[j].ID
	})

	assets, err := s.ListAssets(ctx)
	if err != nil {
		return fmt.Errorf("list assets: %w", err)
	}
	presets, err := s.TagPresets(ctx)
	if err != nil {
		return fmt.Errorf("load tag presets: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    "1",
		Type:       "header",
		Timestamp:  time.Now().UTC(),
		BoardCount: len(boards),
		AssetCount: len(assets),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, b := range boards {
		if err := enc.Encode(record{Type: "board", Data: b}); err != nil {
			return fmt.Errorf("encode board %d: %w", b.ID, err)
		}
	}
	for i := range assets {
		if err := enc.Encode(record{Type: "asset", Data: &assets[i]}); err != nil {
			return fmt.Errorf("encode asset %v: %w", assets[i].ID, err)
		}
	}
	if err := enc.Encode(record{Type: "tag_presets", Data: presets}); err != nil {
		return fmt.Errorf("encode tag presets: %w", err)
	}

	return nil
}
