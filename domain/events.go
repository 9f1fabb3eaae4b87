package domain

// CommandEvent represents a slash command sent by a user
type CommandEvent struct {
	UserID    int64
	ChatID    int64
	FirstName string
	Command   string
	Args      []string
}

// AudioEvent represents an inbound audio, voice note, or audio document
type AudioEvent struct {
	UserID    int64
	ChatID    int64
	FirstName string
	// FileRef identifies the not-yet-downloaded file on the messaging platform
	FileRef string
	// DeclaredSize is the size announced by the platform, in bytes
	DeclaredSize int64
	// Filename is empty for voice notes recorded in the client
	Filename string
	// DurationHint is the platform-supplied duration in seconds (untrusted)
	DurationHint int
}

// SelectionEvent represents the user picking an output shape for a
// previously received audio
type SelectionEvent struct {
	UserID     int64
	ChatID     int64
	MessageID  int
	CallbackID string
	Value      string
}
