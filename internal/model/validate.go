package model

import "fmt"

// Validate reports whether the board is a well-formed stored document.
// The store treats a document that unmarshals but fails validation the
// same as one that does not parse at all.
func (b *Board) Validate() error {
	if b.ID == 0 {
		return fmt.Errorf("board has no id")
	}
	if b.Name == "" {
		return fmt.Errorf("board %d has no name", b.ID)
	}
	return nil
}

// Validate reports whether the asset is well-formed.
func (a *Asset) Validate() error {
	if a.ID == 0 {
		return fmt.Errorf("asset has no id")
	}
	if a.Src == "" {
		return fmt.Errorf("asset %v has no src", a.ID)
	}
	return nil
}
