package model

import "encoding/json"

// Board is a single moodboard document. Boards are persisted one file per
// board; the ID is assigned at creation (epoch milliseconds) and never
// changes, while the name may change and drives the on-disk filename.
//
// ViewState, Strokes, Objects and Groups are opaque front-end payloads.
// The store round-trips them untouched and never looks inside.
type Board struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	BgColor   string          `json:"bgColor"`
	CreatedAt uint64          `json:"createdAt"`
	UpdatedAt uint64          `json:"updatedAt"`
	Layers    []Layer         `json:"layers"`
	Assets    []Asset         `json:"assets"`
	Thumbnail *string         `json:"thumbnail,omitempty"`
	ViewState json.RawMessage `json:"viewState,omitempty"`
	Strokes   json.RawMessage `json:"strokes,omitempty"`
	Objects   json.RawMessage `json:"objects,omitempty"`
	Groups    json.RawMessage `json:"groups,omitempty"`
}

// Metadata returns the lightweight projection used for list views, so that
// layers, strokes and other heavy payloads are never loaded just to
// enumerate boards.
func (b *Board) Metadata() BoardMetadata {
	return BoardMetadata{
		ID:        b.ID,
		Name:      b.Name,
		BgColor:   b.BgColor,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
		Thumbnail: b.Thumbnail,
	}
}

// BoardMetadata is the reduced view of a Board for list displays.
type BoardMetadata struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	BgColor   string  `json:"bgColor"`
	CreatedAt uint64  `json:"createdAt"`
	UpdatedAt uint64  `json:"updatedAt"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}

// BoardUpdate is a partial-update record. Nil fields mean "leave unchanged";
// a present value overwrites the corresponding Board field. Fields that are
// optional on the Board itself (Thumbnail and the opaque payloads) can be
// set but not cleared back to absent through an update.
type BoardUpdate struct {
	Name      *string         `json:"name,omitempty"`
	BgColor   *string         `json:"bgColor,omitempty"`
	Layers    *[]Layer        `json:"layers,omitempty"`
	Assets    *[]Asset        `json:"assets,omitempty"`
	Thumbnail *string         `json:"thumbnail,omitempty"`
	ViewState json.RawMessage `json:"viewState,omitempty"`
	Strokes   json.RawMessage `json:"strokes,omitempty"`
	Objects   json.RawMessage `json:"objects,omitempty"`
	Groups    json.RawMessage `json:"groups,omitempty"`
}

// Apply overwrites the board's fields with the values present in the update.
// It does not touch UpdatedAt; the store stamps that on save.
func (u BoardUpdate) Apply(b *Board) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.BgColor != nil {
		b.BgColor = *u.BgColor
	}
	if u.Layers != nil {
		b.Layers = *u.Layers
	}
	if u.Assets != nil {
		b.Assets = *u.Assets
	}
	if u.Thumbnail != nil {
		b.Thumbnail = u.Thumbnail
	}
	if u.ViewState != nil {
		b.ViewState = u.ViewState
	}
	if u.Strokes != nil {
		b.Strokes = u.Strokes
	}
	if u.Objects != nil {
		b.Objects = u.Objects
	}
	if u.Groups != nil {
		b.Groups = u.Groups
	}
}

// Layer is a positioned, sized image element within a board. Layer ids are
// front-end generated and may be fractional, hence float64.
type Layer struct {
	ID      float64 `json:"id"`
	Name    string  `json:"name"`
	Src     string  `json:"src"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Visible bool    `json:"visible"`
}

// UnmarshalJSON defaults Visible to true when the field is absent, so
// documents written before the field existed keep their layers visible.
func (l *Layer) UnmarshalJSON(data []byte) error {
	type layer Layer
	aux := struct {
		*layer
		Visible *bool `json:"visible"`
	}{layer: (*layer)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Visible = aux.Visible == nil || *aux.Visible
	return nil
}
