package telegram

import (
	"reflect"
	"testing"
)

func TestParseUpdateCommand(t *testing.T) {
	update := Update{Message: &Message{
		From: &User{ID: 9, FirstName: "Ana"},
		Chat: Chat{ID: 9},
		Text: "/start senha123",
	}}

	cmd, audio, sel := ParseUpdate(update)
	if audio != nil || sel != nil {
		t.Fatal("expected only a command event")
	}
	if cmd == nil {
		t.Fatal("command event is nil")
	}
	if cmd.Command != "start" {
		t.Errorf("Command = %q, want start", cmd.Command)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"senha123"}) {
		t.Errorf("Args = %v", cmd.Args)
	}
}

func TestParseUpdateCommandWithBotSuffix(t *testing.T) {
	update := Update{Message: &Message{
		From: &User{ID: 9},
		Chat: Chat{ID: 9},
		Text: "/Help@MeuBot",
	}}

	cmd, _, _ := ParseUpdate(update)
	if cmd == nil || cmd.Command != "help" {
		t.Fatalf("cmd = %+v, want help", cmd)
	}
}

func TestParseUpdateVoice(t *testing.T) {
	update := Update{Message: &Message{
		From:  &User{ID: 9, FirstName: "Ana"},
		Chat:  Chat{ID: 9},
		Voice: &Voice{FileID: "ref-v", Duration: 30, FileSize: 12345},
	}}

	_, audio, _ := ParseUpdate(update)
	if audio == nil {
		t.Fatal("audio event is nil")
	}
	if audio.FileRef != "ref-v" || audio.DeclaredSize != 12345 || audio.DurationHint != 30 {
		t.Errorf("audio = %+v", audio)
	}
	if audio.Filename != "" {
		t.Errorf("voice note Filename = %q, want empty", audio.Filename)
	}
}

func TestParseUpdateAudioDocument(t *testing.T) {
	update := Update{Message: &Message{
		From:     &User{ID: 9},
		Chat:     Chat{ID: 9},
		Document: &Document{FileID: "ref-d", FileName: "reuniao.m4a", FileSize: 999},
	}}

	_, audio, _ := ParseUpdate(update)
	if audio == nil {
		t.Fatal("audio event is nil")
	}
	if audio.Filename != "reuniao.m4a" {
		t.Errorf("Filename = %q", audio.Filename)
	}
}

func TestParseUpdateCallback(t *testing.T) {
	update := Update{CallbackQuery: &CallbackQuery{
		ID:      "cb-1",
		From:    User{ID: 9},
		Data:    "summary",
		Message: &Message{MessageID: 50, Chat: Chat{ID: 9}},
	}}

	_, _, sel := ParseUpdate(update)
	if sel == nil {
		t.Fatal("selection event is nil")
	}
	if sel.CallbackID != "cb-1" || sel.Value != "summary" || sel.MessageID != 50 {
		t.Errorf("selection = %+v", sel)
	}
}

func TestParseUpdateIgnoresPlainText(t *testing.T) {
	update := Update{Message: &Message{
		From: &User{ID: 9},
		Chat: Chat{ID: 9},
		Text: "oi, tudo bem?",
	}}

	cmd, audio, sel := ParseUpdate(update)
	if cmd != nil || audio != nil || sel != nil {
		t.Errorf("got (%v, %v, %v), want all nil", cmd, audio, sel)
	}
}
