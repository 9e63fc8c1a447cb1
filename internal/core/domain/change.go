package domain

import "time"

// SourceChange describes an edit to the backing source made by another program.
type SourceChange struct {
	// Path is the source file.
	Path string `json:"path"`

	// Removed is true when the file was deleted or renamed away.
	Removed bool `json:"removed"`

	// At is when the change was seen.
	At time.Time `json:"at"`
}
