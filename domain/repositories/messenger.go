package repositories

import "context"

// Choice is one option in a small fixed set of buttons presented to a user.
type Choice struct {
	Label string
	Value string
}

// FileFetcher downloads a platform-hosted file to a local path.
type FileFetcher interface {
	// FetchFile resolves fileRef with the platform and writes the bytes
	// to destPath.
	FetchFile(ctx context.Context, fileRef, destPath string) error
}

// Messenger abstracts the messaging platform: delivering replies, editing
// status messages, presenting choice buttons and fetching remote files.
type Messenger interface {
	FileFetcher

	// SendText delivers a plain text message and returns its message ID.
	SendText(ctx context.Context, chatID int64, text string) (int, error)

	// SendChoices delivers a message with a row-wrapped set of buttons and
	// returns its message ID. The chosen Value comes back as a selection
	// event.
	SendChoices(ctx context.Context, chatID int64, text string, choices [][]Choice) (int, error)

	// EditText replaces the text of a previously sent message.
	EditText(ctx context.Context, chatID int64, messageID int, text string) error

	// AcknowledgeSelection confirms receipt of a button press so the
	// client stops showing a progress indicator.
	AcknowledgeSelection(ctx context.Context, callbackID string) error
}
