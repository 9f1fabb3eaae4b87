package entities

import "time"

// PendingSelection bridges the two-step flow between "audio received" and
// "user picked an output shape". It holds only a reference to the file on
// the platform, never the bytes. At most one lives per user at a time.
type PendingSelection struct {
	FileRef      string
	Filename     string
	DeclaredSize int64
	CreatedAt    time.Time
}
