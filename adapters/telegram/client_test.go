package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/notavoz/notavoz/domain/repositories"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{Token: "123:abc", APIBaseURL: server.URL}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return server, client
}

func writeResult(t *testing.T, w http.ResponseWriter, result any) {
	t.Helper()
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	json.NewEncoder(w).Encode(apiResponse{OK: true, Result: raw})
}

func TestSendText(t *testing.T) {
	var gotPath string
	var gotParams map[string]any

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotParams)
		writeResult(t, w, Message{MessageID: 77})
	})

	id, err := client.SendText(context.Background(), 42, "oi")
	if err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
	if id != 77 {
		t.Errorf("message ID = %d, want 77", id)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotParams["text"] != "oi" || gotParams["chat_id"] != float64(42) {
		t.Errorf("params = %v", gotParams)
	}
}

func TestSendChoicesKeyboard(t *testing.T) {
	var gotParams struct {
		ReplyMarkup inlineKeyboardMarkup `json:"reply_markup"`
	}

	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotParams)
		writeResult(t, w, Message{MessageID: 5})
	})

	choices := [][]repositories.Choice{
		{{Label: "📝 Transcrição Crua", Value: "raw"}, {Label: "📋 Resumo", Value: "summary"}},
		{{Label: "📄 Ata", Value: "minutes"}},
	}
	if _, err := client.SendChoices(context.Background(), 42, "escolha", choices); err != nil {
		t.Fatalf("SendChoices() error = %v", err)
	}

	kb := gotParams.ReplyMarkup.InlineKeyboard
	if len(kb) != 2 || len(kb[0]) != 2 || len(kb[1]) != 1 {
		t.Fatalf("keyboard shape = %v", kb)
	}
	if kb[0][1].CallbackData != "summary" {
		t.Errorf("callback data = %q, want summary", kb[0][1].CallbackData)
	}
}

func TestEditText(t *testing.T) {
	var gotPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeResult(t, w, true)
	})

	if err := client.EditText(context.Background(), 42, 77, "novo texto"); err != nil {
		t.Fatalf("EditText() error = %v", err)
	}
	if gotPath != "/bot123:abc/editMessageText" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestAPIErrorEnvelope(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(apiResponse{OK: false, ErrorCode: 400, Description: "Bad Request: message not found"})
	})

	if err := client.EditText(context.Background(), 42, 77, "x"); err == nil {
		t.Fatal("EditText() succeeded on an error envelope")
	}
}

func TestFetchFile(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bot123:abc/getFile":
			writeResult(t, w, File{FileID: "ref-1", FilePath: "voice/file_7.oga"})
		case "/file/bot123:abc/voice/file_7.oga":
			w.Write([]byte("audio-bytes"))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	})

	dest := filepath.Join(t.TempDir(), "file_7.oga")
	if err := client.FetchFile(context.Background(), "ref-1", dest); err != nil {
		t.Fatalf("FetchFile() error = %v", err)
	}

	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(content) != "audio-bytes" {
		t.Errorf("content = %q", content)
	}
}

func TestGetUpdates(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var params map[string]any
		json.NewDecoder(r.Body).Decode(&params)
		if params["offset"] != float64(100) {
			t.Errorf("offset = %v, want 100", params["offset"])
		}
		writeResult(t, w, []Update{
			{UpdateID: 100, Message: &Message{MessageID: 1, From: &User{ID: 9}, Chat: Chat{ID: 9}, Text: "/start"}},
			{UpdateID: 101},
		})
	})

	updates, err := client.GetUpdates(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetUpdates() error = %v", err)
	}
	if len(updates) != 2 {
		t.Fatalf("len(updates) = %d, want 2", len(updates))
	}
	if updates[0].Message.Text != "/start" {
		t.Errorf("first update text = %q", updates[0].Message.Text)
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	if _, err := NewClient(Config{}, zaptest.NewLogger(t)); err == nil {
		t.Fatal("NewClient() accepted an empty token")
	}
}
