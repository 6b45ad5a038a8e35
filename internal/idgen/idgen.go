// Package idgen provides millisecond-timestamp identifiers for boards and
// assets, plus short random tokens (backed by nanoid) for temp-file names.
package idgen

import (
	"fmt"
	"sync"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet defines the character set for random tokens.
var Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// TokenLength is the number of random characters in a token.
var TokenLength = 8

var (
	mu   sync.Mutex
	last uint64
)

// Millis returns the current epoch-millisecond timestamp, strictly
// increasing across calls within the process. Two calls in the same
// millisecond get consecutive values, so ids derived from Millis are
// unique and id-keyed filenames cannot collide.
func Millis() uint64 {
	mu.Lock()
	defer mu.Unlock()
	now := uint64(time.Now().UnixMilli())
	if now <= last {
		now = last + 1
	}
	last = now
	return now
}

// AssetID returns a fresh asset identifier. Asset ids are epoch millis
// carried as float64 to match front-end generated fractional ids.
func AssetID() float64 {
	return float64(Millis())
}

// Token returns a short random lowercase token.
func Token() (string, error) {
	id, err := nanoid.Generate(Alphabet, TokenLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return id, nil
}
