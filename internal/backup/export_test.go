package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/easelhq/easel/internal/model"
	"github.com/easelhq/easel/internal/store/fsjson"
)

func newSeededStore(t *testing.T) *fsjson.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := fsjson.New(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("fsjson.New: %v", err)
	}
	ctx := context.Background()
	if _, err := s.CreateBoard(ctx, "first", "#111"); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if _, err := s.CreateBoard(ctx, "second", "#222"); err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	if _, err := s.AddAsset(ctx, "ref", "src", []string{"blue"}, nil); err != nil {
		t.Fatalf("AddAsset: %v", err)
	}
	if err := s.SaveTagPresets(ctx, []string{"mood"}); err != nil {
		t.Fatalf("SaveTagPresets: %v", err)
	}
	return s
}

func TestExportJSONL(t *testing.T) {
	s := newSeededStore(t)

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), s, &buf); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	// First line is the header with correct counts.
	if !scanner.Scan() {
		t.Fatal("no header line")
	}
	var hdr header
	if err := json.Unmarshal(scanner.Bytes(), &hdr); err != nil {
		t.Fatalf("decoding header: %v", err)
	}
	if hdr.Type != "header" || hdr.Version != "1" {
		t.Errorf("header = %+v", hdr)
	}
	if hdr.BoardCount != 2 || hdr.AssetCount != 1 {
		t.Errorf("header counts = %d boards %d assets, want 2 and 1", hdr.BoardCount, hdr.AssetCount)
	}

	counts := map[string]int{}
	var prevBoardID uint64
	for scanner.Scan() {
		var rec struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("decoding record: %v", err)
		}
		counts[rec.Type]++
		if rec.Type == "board" {
			var b model.Board
			if err := json.Unmarshal(rec.Data, &b); err != nil {
				t.Fatalf("decoding board record: %v", err)
			}
			if b.ID <= prevBoardID {
				t.Errorf("boards not sorted by id: %d after %d", b.ID, prevBoardID)
			}
			prevBoardID = b.ID
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if counts["board"] != 2 || counts["asset"] != 1 || counts["tag_presets"] != 1 {
		t.Errorf("record counts = %v, want 2 boards, 1 asset, 1 tag_presets", counts)
	}
}
