package fsjson

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/store"
)

func errorsIsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// compactJSON normalizes raw JSON for comparison. Pretty-printed storage
// re-indents embedded payloads, so equality is on value, not bytes.
func compactJSON(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		t.Fatalf("compacting %s: %v", raw, err)
	}
	return buf.String()
}

func boardFiles(t *testing.T, s *Store) []string {
	t.Helper()
	entries, err := os.ReadDir(s.boardsDir)
	if err != nil {
		t.Fatalf("read boards dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSanitizeFilename(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"Mood Board", "mood-board"},
		{"already-safe_name1", "already-safe_name1"},
		{"CAPS", "caps"},
		{"a/b\\c:d", "a-b-c-d"},
		{"été #2", "été--2"},
		{"", ""},
	} {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNew_InitializesDocuments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assets, err := s.ListAssets(ctx)
	if err != nil {
		t.Fatalf("ListAssets on fresh store: %v", err)
	}
	if len(assets) != 0 {
		t.Errorf("fresh library has %d assets, want 0", len(assets))
	}

	presets, err := s.TagPresets(ctx)
	if err != nil {
		t.Fatalf("TagPresets on fresh store: %v", err)
	}
	if len(presets) != 0 {
		t.Errorf("fresh presets = %v, want empty", presets)
	}
}

func TestCreateBoard_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateBoard(ctx, "Mood Board", "#1a1a2e")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if created.CreatedAt != created.UpdatedAt {
		t.Errorf("createdAt %d != updatedAt %d on fresh board", created.CreatedAt, created.UpdatedAt)
	}
	if created.ID != created.CreatedAt {
		t.Errorf("id %d != createdAt %d", created.ID, created.CreatedAt)
	}
	if len(created.Layers) != 0 || len(created.Assets) != 0 {
		t.Errorf("fresh board not empty: %+v", created)
	}

	loaded, err := s.GetBoard(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	got, _ := json.Marshal(loaded)
	want, _ := json.Marshal(created)
	if string(got) != string(want) {
		t.Errorf("loaded board differs:\n got %s\nwant %s", got, want)
	}

	files := boardFiles(t, s)
	if len(files) != 1 || !strings.HasPrefix(files[0], "mood-board-") || !strings.HasSuffix(files[0], ".json") {
		t.Errorf("board files = %v, want single mood-board-<id>.json", files)
	}
}

func TestSaveBoard_OpaquePayloadFidelity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, "full", "#fff")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	thumb := "data:image/png;base64,AAAA"
	b.Thumbnail = &thumb
	b.ViewState = json.RawMessage(`{"zoom":2,"pan":{"x":1,"y":-3.5}}`)
	b.Strokes = json.RawMessage(`[{"points":[0,1,2]}]`)
	b.Objects = json.RawMessage(`[{"kind":"note"}]`)
	b.Groups = json.RawMessage(`[[1,2],[3]]`)
	b.Layers = []model.Layer{{ID: 0.5, Name: "l", Src: "s", Width: 1, Height: 1, Visible: false}}

	if err := s.SaveBoard(ctx, b); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	got, err := s.GetBoard(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}

	if got.Thumbnail == nil || *got.Thumbnail != thumb {
		t.Errorf("thumbnail = %v, want %q", got.Thumbnail, thumb)
	}
	for name, pair := range map[string][2]json.RawMessage{
		"viewState": {got.ViewState, b.ViewState},
		"strokes":   {got.Strokes, b.Strokes},
		"objects":   {got.Objects, b.Objects},
		"groups":    {got.Groups, b.Groups},
	} {
		if g, w := compactJSON(t, pair[0]), compactJSON(t, pair[1]); g != w {
			t.Errorf("%s = %s, want %s", name, g, w)
		}
	}
	if len(got.Layers) != 1 || got.Layers[0].Visible {
		t.Errorf("layers = %+v, want one invisible layer", got.Layers)
	}
}

func TestUpdateBoard_Rename(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, "old name", "#000")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	name := "new name"
	updated, err := s.UpdateBoard(ctx, b.ID, model.BoardUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name = %q, want %q", updated.Name, name)
	}
	if updated.ID != b.ID {
		t.Errorf("rename changed id: %d -> %d", b.ID, updated.ID)
	}

	// Exactly one file and one listing entry; the old file is gone.
	files := boardFiles(t, s)
	if len(files) != 1 || !strings.HasPrefix(files[0], "new-name-") {
		t.Errorf("board files after rename = %v", files)
	}
	metas, err := s.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(metas) != 1 || metas[0].ID != b.ID || metas[0].Name != name {
		t.Errorf("metas after rename = %+v", metas)
	}
}

func TestUpdateBoard_EmptyPatchOnlyStampsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, "still", "#123")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	updated, err := s.UpdateBoard(ctx, b.ID, model.BoardUpdate{})
	if err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if updated.UpdatedAt <= b.UpdatedAt {
		t.Errorf("updatedAt not bumped: %d -> %d", b.UpdatedAt, updated.UpdatedAt)
	}

	// Everything but updatedAt is byte-identical.
	updated.UpdatedAt = b.UpdatedAt
	got, _ := json.Marshal(updated)
	want, _ := json.Marshal(b)
	if string(got) != string(want) {
		t.Errorf("empty update changed fields:\n got %s\nwant %s", got, want)
	}
}

func TestGetBoard_NotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetBoard(context.Background(), 12345); !errorsIsNotFound(err) {
		t.Errorf("GetBoard(absent) = %v, want ErrNotFound", err)
	}
}

func TestDeleteBoard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.DeleteBoard(ctx, 999); !errorsIsNotFound(err) {
		t.Errorf("DeleteBoard(absent) = %v, want ErrNotFound", err)
	}

	b, err := s.CreateBoard(ctx, "doomed", "#000")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if err := s.DeleteBoard(ctx, b.ID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	metas, err := s.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("boards after delete = %+v, want none", metas)
	}
	if _, err := s.GetBoard(ctx, b.ID); !errorsIsNotFound(err) {
		t.Errorf("GetBoard after delete = %v, want ErrNotFound", err)
	}
}

func TestListBoards_SkipsCorruptFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateBoard(ctx, "good", "#fff"); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	for name, content := range map[string]string{
		"corrupt.json": "{not json",
		"no-id.json":   `{"name":"x","bgColor":"#000"}`,
	} {
		if err := os.WriteFile(filepath.Join(s.boardsDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	metas, err := s.ListBoards(ctx)
	if err != nil {
		t.Fatalf("ListBoards with corrupt files: %v", err)
	}
	if len(metas) != 1 || metas[0].Name != "good" {
		t.Errorf("metas = %+v, want only the good board", metas)
	}
}

func TestGetBoard_RecoversFromStaleIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, "wanderer", "#000")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	// Move the file behind the store's back; the index now points nowhere.
	old := s.boardPath(b.Name, b.ID)
	moved := filepath.Join(s.boardsDir, "elsewhere.json")
	if err := os.Rename(old, moved); err != nil {
		t.Fatalf("rename: %v", err)
	}

	got, err := s.GetBoard(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetBoard after external move: %v", err)
	}
	if got.ID != b.ID || got.Name != b.Name {
		t.Errorf("got %+v, want id %d name %q", got, b.ID, b.Name)
	}
}

func TestRemoveBoardAsset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, "with assets", "#000")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	b.Assets = []model.Asset{
		{ID: 1, Name: "keep", Src: "a"},
		{ID: 2, Name: "drop", Src: "b"},
		{ID: 3, Name: "keep2", Src: "c"},
	}
	if err := s.SaveBoard(ctx, b); err != nil {
		t.Fatalf("SaveBoard: %v", err)
	}
	before := b.UpdatedAt

	got, err := s.RemoveBoardAsset(ctx, b.ID, 2)
	if err != nil {
		t.Fatalf("RemoveBoardAsset: %v", err)
	}
	if len(got.Assets) != 2 || got.Assets[0].ID != 1 || got.Assets[1].ID != 3 {
		t.Errorf("assets = %+v, want ids 1 and 3", got.Assets)
	}
	if got.UpdatedAt < before {
		t.Errorf("updatedAt went backwards: %d -> %d", before, got.UpdatedAt)
	}

	if _, err := s.RemoveBoardAsset(ctx, 424242, 1); !errorsIsNotFound(err) {
		t.Errorf("RemoveBoardAsset(absent board) = %v, want ErrNotFound", err)
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b, err := s.CreateBoard(ctx, "busy", "#000")
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	name := "busier"
	if _, err := s.UpdateBoard(ctx, b.ID, model.BoardUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	if _, err := s.AddAsset(ctx, "a", "src", nil, nil); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if err := s.SaveTagPresets(ctx, []string{"x"}); err != nil {
		t.Fatalf("SaveTagPresets: %v", err)
	}

	err = filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, ".tmp") {
			t.Errorf("temp file left behind: %s", path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}
