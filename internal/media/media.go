// Package media owns the images subdirectory of the data dir: imported
// image payloads are written there and referenced by path from boards and
// library assets.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Library writes media payloads into a single images directory.
type Library struct {
	dir string
}

// New creates the images directory if needed.
func New(dir string) (*Library, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve images dir: %w", err)
	}
	return &Library{dir: abs}, nil
}

// Dir returns the resolved images directory.
func (l *Library) Dir() string { return l.dir }

// Path returns the resolved path a file with the given name would have.
func (l *Library) Path(name string) string {
	return filepath.Join(l.dir, safeName(name))
}

// SaveBytes writes data to a file named after name (sanitized) and returns
// the resolved path. An existing file with the same name is overwritten.
func (l *Library) SaveBytes(name string, data []byte) (string, error) {
	path := l.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return path, nil
}

// SaveBase64 decodes a base64 payload (raw, or a full data: URI) and writes
// it like SaveBytes.
func (l *Library) SaveBase64(name, payload string) (string, error) {
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 {
			return "", fmt.Errorf("malformed data URI")
		}
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decode base64 payload: %w", err)
	}
	return l.SaveBytes(name, data)
}

// ImportFile copies an existing local file into the images directory under
// its own (sanitized) base name and returns the resolved destination path.
func (l *Library) ImportFile(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()

	dst := l.Path(filepath.Base(src))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("copy media file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("close media file: %w", err)
	}
	return dst, nil
}

// safeName applies the same filename rule boards use, extended to keep the
// dot so extensions survive.
func safeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '-'
	}, name)
	return strings.ToLower(mapped)
}
