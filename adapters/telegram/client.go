package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://api.telegram.org"

	// longPollTimeout is the getUpdates hold time server-side; the HTTP
	// client timeout must exceed it.
	longPollTimeout = 30 * time.Second
)

// Config holds configuration for the Bot API client.
type Config struct {
	Token      string
	APIBaseURL string
}

// Client talks to the Telegram Bot API over HTTPS. It implements the
// Messenger port and also exposes the update long-polling loop the bot
// runtime consumes.
type Client struct {
	token      string
	apiBaseURL string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ repositories.Messenger = (*Client)(nil)

// NewClient builds a Bot API client.
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if config.APIBaseURL == "" {
		config.APIBaseURL = defaultAPIBaseURL
	}

	return &Client{
		token:      config.Token,
		apiBaseURL: config.APIBaseURL,
		httpClient: &http.Client{Timeout: longPollTimeout + 15*time.Second},
		logger:     logger,
	}, nil
}

// call posts params as JSON to a Bot API method and decodes the result
// envelope into out. out may be nil when the result is irrelevant.
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal %s params: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.apiBaseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("%s failed: %d %s", method, envelope.ErrorCode, envelope.Description)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("unmarshal %s result: %w", method, err)
		}
	}
	return nil
}

// SendText sends a plain text message and returns its message ID.
func (c *Client) SendText(ctx context.Context, chatID int64, text string) (int, error) {
	params := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}

	var msg Message
	if err := c.call(ctx, "sendMessage", params, &msg); err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// SendChoices sends a message with an inline keyboard built from the
// given rows of choices.
func (c *Client) SendChoices(ctx context.Context, chatID int64, text string, choices [][]repositories.Choice) (int, error) {
	keyboard := inlineKeyboardMarkup{}
	for _, row := range choices {
		var buttons []inlineKeyboardButton
		for _, choice := range row {
			buttons = append(buttons, inlineKeyboardButton{
				Text:         choice.Label,
				CallbackData: choice.Value,
			})
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, buttons)
	}

	params := map[string]any{
		"chat_id":      chatID,
		"text":         text,
		"reply_markup": keyboard,
	}

	var msg Message
	if err := c.call(ctx, "sendMessage", params, &msg); err != nil {
		return 0, err
	}
	return msg.MessageID, nil
}

// EditText replaces the text of a previously sent message. Editing also
// drops any inline keyboard attached to it.
func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	params := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}
	return c.call(ctx, "editMessageText", params, nil)
}

// AcknowledgeSelection answers a callback query so the client stops
// showing the loading spinner.
func (c *Client) AcknowledgeSelection(ctx context.Context, callbackID string) error {
	params := map[string]any{
		"callback_query_id": callbackID,
	}
	return c.call(ctx, "answerCallbackQuery", params, nil)
}

// FetchFile resolves fileRef through getFile and downloads the content
// to destPath.
func (c *Client) FetchFile(ctx context.Context, fileRef, destPath string) error {
	var file File
	if err := c.call(ctx, "getFile", map[string]any{"file_id": fileRef}, &file); err != nil {
		return err
	}
	if file.FilePath == "" {
		return fmt.Errorf("getFile returned no file_path for %s", fileRef)
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", c.apiBaseURL, c.token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	defer dest.Close()

	written, err := io.Copy(dest, resp.Body)
	if err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}

	c.logger.Debug("file downloaded",
		zap.String("dest", destPath),
		zap.Int64("bytes", written))
	return nil
}

// GetUpdates long-polls the Bot API for new updates past offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := map[string]any{
		"offset":          offset,
		"timeout":         int(longPollTimeout.Seconds()),
		"allowed_updates": []string{"message", "callback_query"},
	}

	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}
