package telegram

import (
	"strings"

	"github.com/notavoz/notavoz/domain"
)

// ParseUpdate classifies an update into one of the domain events. It
// returns exactly one non-nil event, or all nil for updates the bot
// does not handle (stickers, photos, plain text that is not a command).
func ParseUpdate(update Update) (*domain.CommandEvent, *domain.AudioEvent, *domain.SelectionEvent) {
	if update.CallbackQuery != nil {
		return nil, nil, parseSelection(update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil, nil, nil
	}

	msg := update.Message
	if audio := parseAudio(msg); audio != nil {
		return nil, audio, nil
	}
	if cmd := parseCommand(msg); cmd != nil {
		return cmd, nil, nil
	}
	return nil, nil, nil
}

func parseCommand(msg *Message) *domain.CommandEvent {
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return nil
	}

	fields := strings.Fields(text)
	command := strings.TrimPrefix(fields[0], "/")
	// Group chats address commands as /cmd@BotName.
	if i := strings.IndexByte(command, '@'); i >= 0 {
		command = command[:i]
	}

	return &domain.CommandEvent{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		FirstName: msg.From.FirstName,
		Command:   strings.ToLower(command),
		Args:      fields[1:],
	}
}

// parseAudio extracts an inbound audio attachment. Voice notes and
// video notes carry no filename; documents are accepted here and
// validated by extension further down the pipeline.
func parseAudio(msg *Message) *domain.AudioEvent {
	event := &domain.AudioEvent{
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		FirstName: msg.From.FirstName,
	}

	switch {
	case msg.Voice != nil:
		event.FileRef = msg.Voice.FileID
		event.DeclaredSize = msg.Voice.FileSize
		event.DurationHint = msg.Voice.Duration
	case msg.Audio != nil:
		event.FileRef = msg.Audio.FileID
		event.DeclaredSize = msg.Audio.FileSize
		event.Filename = msg.Audio.FileName
		event.DurationHint = msg.Audio.Duration
	case msg.VideoNote != nil:
		event.FileRef = msg.VideoNote.FileID
		event.DeclaredSize = msg.VideoNote.FileSize
		event.DurationHint = msg.VideoNote.Duration
	case msg.Document != nil:
		event.FileRef = msg.Document.FileID
		event.DeclaredSize = msg.Document.FileSize
		event.Filename = msg.Document.FileName
	default:
		return nil
	}

	return event
}

func parseSelection(query *CallbackQuery) *domain.SelectionEvent {
	event := &domain.SelectionEvent{
		UserID:     query.From.ID,
		CallbackID: query.ID,
		Value:      query.Data,
	}
	if query.Message != nil {
		event.ChatID = query.Message.Chat.ID
		event.MessageID = query.Message.MessageID
	}
	return event
}
