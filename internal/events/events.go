package events

import (
	"context"

	"github.com/easelhq/easel/internal/model"
)

// Event topic constants. A front end subscribed to "easel.>" can keep its
// board list and asset browser live while another process mutates the data.
const (
	TopicBoardCreated      = "easel.board.created"
	TopicBoardUpdated      = "easel.board.updated"
	TopicBoardDeleted      = "easel.board.deleted"
	TopicBoardAssetRemoved = "easel.board.asset_removed"

	TopicAssetAdded   = "easel.asset.added"
	TopicAssetUpdated = "easel.asset.updated"
	TopicAssetDeleted = "easel.asset.deleted"

	TopicTagPresetsSaved = "easel.tags.saved"
)

// Event types

type BoardCreated struct {
	Board *model.Board `json:"board"`
}

type BoardUpdated struct {
	Board *model.Board `json:"board"`
}

type BoardDeleted struct {
	BoardID uint64 `json:"boardId"`
}

type BoardAssetRemoved struct {
	Board   *model.Board `json:"board"`
	AssetID float64      `json:"assetId"`
}

type AssetAdded struct {
	Asset *model.Asset `json:"asset"`
}

type AssetUpdated struct {
	Asset *model.Asset `json:"asset"`
}

type AssetDeleted struct {
	AssetID float64 `json:"assetId"`
}

type TagPresetsSaved struct {
	Presets []string `json:"presets"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
