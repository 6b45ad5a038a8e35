// Package fsjson implements the store.Store interface backed by JSON files
// on disk: one pretty-printed document per board under boards/, plus single
// documents for the shared asset library and tag presets. The layout is
// deliberately human-inspectable.
package fsjson

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/easelhq/easel/internal/idgen"
	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/store"
)

const (
	boardsDirName   = "boards"
	assetsFileName  = "all_assets.json"
	presetsFileName = "tag_presets.json"
)

// Store implements store.Store on top of a data directory.
//
// An in-memory id→path index makes board lookups O(1); it is built once at
// startup and maintained on every save, delete and rename. A full rescan
// repairs it if the directory changed behind our back. The mutex serializes
// store operations, which also keeps the index consistent.
type Store struct {
	dir       string
	boardsDir string
	logger    *slog.Logger

	mu    sync.Mutex
	index map[uint64]string // board id -> file path
}

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// New opens (creating if needed) the data directory layout and builds the
// board index. The asset library and tag preset documents are created empty
// on first run so later loads never have to handle a missing file.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:       dir,
		boardsDir: filepath.Join(dir, boardsDirName),
		logger:    logger,
		index:     map[uint64]string{},
	}

	if err := os.MkdirAll(s.boardsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create boards dir: %w", err)
	}
	if err := initDocument(s.assetsPath(), []model.Asset{}); err != nil {
		return nil, fmt.Errorf("init asset library: %w", err)
	}
	if err := initDocument(s.presetsPath(), []string{}); err != nil {
		return nil, fmt.Errorf("init tag presets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.scanLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close is a no-op; the store holds no open handles between operations.
func (s *Store) Close() error { return nil }

// Dir returns the data directory the store was opened on.
func (s *Store) Dir() string { return s.dir }

func (s *Store) assetsPath() string  { return filepath.Join(s.dir, assetsFileName) }
func (s *Store) presetsPath() string { return filepath.Join(s.dir, presetsFileName) }

// boardPath derives the canonical file path for a board from its current
// name and id. The id component keeps paths unique: ids are unique, so two
// boards whose names sanitize identically still get distinct files.
func (s *Store) boardPath(name string, id uint64) string {
	return filepath.Join(s.boardsDir, fmt.Sprintf("%s-%d.json", sanitizeFilename(name), id))
}

// sanitizeFilename replaces every rune that is not a letter, digit, '-' or
// '_' with '-' and lower-cases the result, keeping filenames safe across
// platforms.
func sanitizeFilename(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
	return strings.ToLower(mapped)
}

// initDocument creates path with the pretty-printed empty value unless the
// file already exists.
func initDocument(path string, empty any) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	data, err := json.MarshalIndent(empty, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash mid-write never leaves a truncated
// document at path.
func writeFileAtomic(path string, data []byte) error {
	tok, err := idgen.Token()
	if err != nil {
		return err
	}
	tmp := path + "." + tok + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// readBoardFile loads and validates a single board document.
func readBoardFile(path string) (*model.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b model.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
