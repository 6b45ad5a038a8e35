package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/easelhq/easel/internal/model"
)

// ErrNotFound is returned when a board or asset id does not exist.
// Callers check it with errors.Is; the wrapping message carries the id.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for boards, the shared asset
// library and tag presets.
type Store interface {
	// Boards
	ListBoards(ctx context.Context) ([]model.BoardMetadata, error)
	GetBoard(ctx context.Context, id uint64) (*model.Board, error)
	CreateBoard(ctx context.Context, name, bgColor string) (*model.Board, error)
	SaveBoard(ctx context.Context, board *model.Board) error
	UpdateBoard(ctx context.Context, id uint64, upd model.BoardUpdate) (*model.Board, error)
	DeleteBoard(ctx context.Context, id uint64) error
	RemoveBoardAsset(ctx context.Context, boardID uint64, assetID float64) (*model.Board, error)

	// Shared asset library
	ListAssets(ctx context.Context) ([]model.Asset, error)
	AddAsset(ctx context.Context, name, src string, tags []string, metadata json.RawMessage) (*model.Asset, error)
	UpdateAsset(ctx context.Context, asset model.Asset) error
	DeleteAsset(ctx context.Context, id float64) error

	// Tag presets
	TagPresets(ctx context.Context) ([]string, error)
	SaveTagPresets(ctx context.Context, presets []string) error

	// Lifecycle
	Close() error
}
