package model

import "encoding/json"

// Asset is a named image/media reference. The same type backs both the
// shared asset library and the board-local copies embedded in each Board;
// a board-local asset is an independent copy, not a reference into the
// library. Ids are epoch milliseconds at creation, kept as float64 to
// match front-end generated fractional ids.
type Asset struct {
	ID       float64         `json:"id"`
	Name     string          `json:"name"`
	Src      string          `json:"src"`
	Tags     []string        `json:"tags,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}
