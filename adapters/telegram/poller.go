package telegram

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
)

// EventHandler receives the domain events parsed out of updates. Each
// call runs on its own goroutine so a slow transcription never stalls
// the polling loop.
type EventHandler interface {
	HandleCommand(ctx context.Context, event domain.CommandEvent)
	HandleAudio(ctx context.Context, event domain.AudioEvent)
	HandleSelection(ctx context.Context, event domain.SelectionEvent)
}

// pollRetryDelay spaces out retries after a getUpdates failure.
const pollRetryDelay = 5 * time.Second

// Poll long-polls for updates and dispatches them until ctx is
// cancelled.
func (c *Client) Poll(ctx context.Context, handler EventHandler) error {
	var offset int64

	c.logger.Info("update polling started")

	for {
		updates, err := c.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("getUpdates failed, retrying", zap.Error(err))
			select {
			case <-time.After(pollRetryDelay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			c.dispatch(ctx, handler, update)
		}
	}
}

func (c *Client) dispatch(ctx context.Context, handler EventHandler, update Update) {
	cmd, audio, selection := ParseUpdate(update)
	switch {
	case cmd != nil:
		go handler.HandleCommand(ctx, *cmd)
	case audio != nil:
		go handler.HandleAudio(ctx, *audio)
	case selection != nil:
		go handler.HandleSelection(ctx, *selection)
	}
}
