package fsjson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/easelhq/easel/internal/idgen"
	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/store"
)

// loadAssetsLocked parses the single asset library document. Unlike board
// scans there is no multi-file fallback: the file must exist and parse.
// New guarantees it is created empty on first run.
func (s *Store) loadAssetsLocked() ([]model.Asset, error) {
	data, err := os.ReadFile(s.assetsPath())
	if err != nil {
		return nil, fmt.Errorf("read asset library: %w", err)
	}
	var assets []model.Asset
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, fmt.Errorf("parse asset library: %w", err)
	}
	return assets, nil
}

// saveAssetsLocked replaces the whole library document atomically.
func (s *Store) saveAssetsLocked(assets []model.Asset) error {
	data, err := json.MarshalIndent(assets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode asset library: %w", err)
	}
	if err := writeFileAtomic(s.assetsPath(), data); err != nil {
		return fmt.Errorf("write asset library: %w", err)
	}
	return nil
}

// ListAssets returns every entry in the shared asset library.
func (s *Store) ListAssets(ctx context.Context) ([]model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAssetsLocked()
}

// AddAsset inserts an asset into the shared library, deduplicating on the
// exact (name, src) pair. On a dedup hit the stored entry is returned
// unchanged — tags and metadata supplied by the caller are ignored, the
// library is not rewritten. Otherwise a fresh id is assigned and the entry
// appended.
func (s *Store) AddAsset(ctx context.Context, name, src string, tags []string, metadata json.RawMessage) (*model.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets, err := s.loadAssetsLocked()
	if err != nil {
		return nil, err
	}
	for i := range assets {
		if assets[i].Name == name && assets[i].Src == src {
			existing := assets[i]
			return &existing, nil
		}
	}

	asset := model.Asset{
		ID:       idgen.AssetID(),
		Name:     name,
		Src:      src,
		Tags:     tags,
		Metadata: metadata,
	}
	assets = append(assets, asset)
	if err := s.saveAssetsLocked(assets); err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset replaces the library entry whose id matches asset.ID.
func (s *Store) UpdateAsset(ctx context.Context, asset model.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assets, err := s.loadAssetsLocked()
	if err != nil {
		return err
	}
	for i := range assets {
		if assets[i].ID == asset.ID {
			assets[i] = asset
			return s.saveAssetsLocked(assets)
		}
	}
	return fmt.Errorf("asset %v: %w", asset.ID, store.ErrNotFound)
}

// DeleteAsset removes the entry with the given id from the library.
// Deleting an absent id is not an error.
func (s *Store) DeleteAsset(ctx context.Context, id float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assets, err := s.loadAssetsLocked()
	if err != nil {
		return err
	}
	kept := assets[:0]
	for _, a := range assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return s.saveAssetsLocked(kept)
}

// TagPresets returns the user-curated tag suggestion list.
func (s *Store) TagPresets(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.presetsPath())
	if err != nil {
		return nil, fmt.Errorf("read tag presets: %w", err)
	}
	var presets []string
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse tag presets: %w", err)
	}
	return presets, nil
}

// SaveTagPresets replaces the tag suggestion list as a whole.
func (s *Store) SaveTagPresets(ctx context.Context, presets []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tag presets: %w", err)
	}
	if err := writeFileAtomic(s.presetsPath(), data); err != nil {
		return fmt.Errorf("write tag presets: %w", err)
	}
	return nil
}
