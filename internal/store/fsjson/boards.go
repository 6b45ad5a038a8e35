package fsjson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/easelhq/easel/internal/idgen"
	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/store"
)

// scanLocked reads every board document in directory-iteration order,
// refreshing the id→path index as a side effect. Files that cannot be read
// or do not parse as a valid board are skipped — one corrupt file must
// never block the whole listing — but each skip is logged so corruption
// stays discoverable.
func (s *Store) scanLocked() ([]*model.Board, error) {
	entries, err := os.ReadDir(s.boardsDir)
	if err != nil {
		return nil, fmt.Errorf("read boards dir: %w", err)
	}

	var boards []*model.Board
	index := make(map[uint64]string, len(entries))
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.boardsDir, entry.Name())
		b, err := readBoardFile(path)
		if err != nil {
			skipped++
			s.logger.Warn("skipping unparsable board file", "file", entry.Name(), "err", err)
			continue
		}
		boards = append(boards, b)
		index[b.ID] = path
	}
	if skipped > 0 {
		s.logger.Warn("board scan skipped files", "skipped", skipped, "loaded", len(boards))
	}
	s.index = index
	return boards, nil
}

// getBoardLocked resolves a board by id through the index, falling back to
// one full rescan when the indexed file vanished or no longer holds the id.
func (s *Store) getBoardLocked(id uint64) (*model.Board, error) {
	if path, ok := s.index[id]; ok {
		if b, err := readBoardFile(path); err == nil && b.ID == id {
			return b, nil
		}
	}
	if _, err := s.scanLocked(); err != nil {
		return nil, err
	}
	if path, ok := s.index[id]; ok {
		if b, err := readBoardFile(path); err == nil && b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("board %d: %w", id, store.ErrNotFound)
}

// saveBoardLocked writes the board to its canonical path and removes the
// previous file when a rename moved the board elsewhere. The write itself
// is atomic; the rename cleanup is a separate step, so a crash in between
// leaves the new file authoritative and the old one as an orphan that the
// next save of the same board clears.
func (s *Store) saveBoardLocked(b *model.Board) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode board %d: %w", b.ID, err)
	}
	path := s.boardPath(b.Name, b.ID)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write board %d: %w", b.ID, err)
	}
	if old, ok := s.index[b.ID]; ok && old != path {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("removing renamed board file", "file", old, "err", err)
		}
	}
	s.index[b.ID] = path
	return nil
}

// ListBoards returns the metadata projection of every parsable board, in
// directory-iteration order. Callers needing a particular order re-sort.
func (s *Store) ListBoards(ctx context.Context) ([]model.BoardMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards, err := s.scanLocked()
	if err != nil {
		return nil, err
	}
	metas := make([]model.BoardMetadata, 0, len(boards))
	for _, b := range boards {
		metas = append(metas, b.Metadata())
	}
	return metas, nil
}

// GetBoard loads the full board document for id.
func (s *Store) GetBoard(ctx context.Context, id uint64) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getBoardLocked(id)
}

// CreateBoard persists a new empty board. The id is the creation timestamp
// in epoch millis; createdAt and updatedAt both equal it.
func (s *Store) CreateBoard(ctx context.Context, name, bgColor string) (*model.Board, error) {
	if name == "" {
		return nil, fmt.Errorf("board name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := idgen.Millis()
	b := &model.Board{
		ID:        now,
		Name:      name,
		BgColor:   bgColor,
		CreatedAt: now,
		UpdatedAt: now,
		Layers:    []model.Layer{},
		Assets:    []model.Asset{},
	}
	if err := s.saveBoardLocked(b); err != nil {
		return nil, err
	}
	return b, nil
}

// SaveBoard writes the full board document, relocating the file if the
// board was renamed since the last save.
func (s *Store) SaveBoard(ctx context.Context, b *model.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveBoardLocked(b)
}

// UpdateBoard applies a partial update: only fields present in upd
// overwrite board fields. UpdatedAt is always stamped, even for an empty
// update.
func (s *Store) UpdateBoard(ctx context.Context, id uint64, upd model.BoardUpdate) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.getBoardLocked(id)
	if err != nil {
		return nil, err
	}
	upd.Apply(b)
	b.UpdatedAt = idgen.Millis()
	if err := s.saveBoardLocked(b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBoard removes the board's backing file.
func (s *Store) DeleteBoard(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getBoardLocked(id); err != nil {
		return err
	}
	path := s.index[id]
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete board %d: %w", id, err)
	}
	delete(s.index, id)
	return nil
}

// RemoveBoardAsset drops the board-local asset with the given id from the
// board and re-saves it. Removing an id the board does not hold is not an
// error; the board is saved with a fresh UpdatedAt either way.
func (s *Store) RemoveBoardAsset(ctx context.Context, boardID uint64, assetID float64) (*model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.getBoardLocked(boardID)
	if err != nil {
		return nil, err
	}
	kept := b.Assets[:0]
	for _, a := range b.Assets {
		if a.ID != assetID {
			kept = append(kept, a)
		}
	}
	b.Assets = kept
	b.UpdatedAt = idgen.Millis()
	if err := s.saveBoardLocked(b); err != nil {
		return nil, err
	}
	return b, nil
}
