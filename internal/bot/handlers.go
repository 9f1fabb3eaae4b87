package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain"
	"github.com/notavoz/notavoz/domain/entities"
	"github.com/notavoz/notavoz/domain/repositories"
	"github.com/notavoz/notavoz/internal/format"
	"github.com/notavoz/notavoz/internal/sessions"
	"github.com/notavoz/notavoz/usecase"
)

// shapePrefix namespaces the callback values of the shape keyboard.
const shapePrefix = "fmt_"

// Handler routes domain events to the usecases and talks back to the
// user. One Handler serves all users; per-user state lives in the
// session stores.
type Handler struct {
	service   *usecase.TranscriptionService
	messenger repositories.Messenger
	auth      repositories.Authorizer
	limiter   *sessions.RateLimiter
	lockout   *sessions.LockoutTracker
	logger    *zap.Logger
}

// NewHandler wires the event handlers.
func NewHandler(
	service *usecase.TranscriptionService,
	messenger repositories.Messenger,
	auth repositories.Authorizer,
	limiter *sessions.RateLimiter,
	lockout *sessions.LockoutTracker,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		service:   service,
		messenger: messenger,
		auth:      auth,
		limiter:   limiter,
		lockout:   lockout,
		logger:    logger,
	}
}

// HandleCommand serves /start and /help. Unknown commands are ignored.
func (h *Handler) HandleCommand(ctx context.Context, event domain.CommandEvent) {
	h.logger.Info("command received",
		zap.String("command", event.Command),
		zap.String("user", format.MaskUserID(event.UserID)))

	switch event.Command {
	case "start":
		h.handleStart(ctx, event)
	case "help":
		h.reply(ctx, event.ChatID, helpMessage)
	}
}

func (h *Handler) handleStart(ctx context.Context, event domain.CommandEvent) {
	if locked, remaining := h.lockout.CheckLockout(event.UserID); locked {
		h.reply(ctx, event.ChatID, fmt.Sprintf(
			"🚫 Acesso Bloqueado\n\nMuitas tentativas incorretas.\nTente novamente em %s.",
			format.Duration(remaining.Seconds())))
		return
	}

	authorized, err := h.auth.IsAuthorized(ctx, event.UserID)
	if err != nil {
		h.logger.Error("authorization lookup failed", zap.Error(err))
		h.reply(ctx, event.ChatID, domain.UserMessageFor(err))
		return
	}
	if authorized {
		h.reply(ctx, event.ChatID, welcomeMessage)
		return
	}

	if len(event.Args) == 0 {
		h.reply(ctx, event.ChatID, authRequiredMessage)
		return
	}

	// Passwords may contain spaces.
	password := strings.Join(event.Args, " ")
	ok, err := h.auth.Authenticate(ctx, event.UserID, password)
	if err != nil {
		h.logger.Error("authentication failed", zap.Error(err))
		h.reply(ctx, event.ChatID, domain.UserMessageFor(err))
		return
	}

	if ok {
		h.lockout.ClearFailures(event.UserID)
		h.logger.Info("user authenticated", zap.String("user", format.MaskUserID(event.UserID)))
		h.reply(ctx, event.ChatID, authSuccessMessage)
		return
	}

	h.lockout.RegisterFailure(event.UserID)
	h.logger.Warn("authentication attempt failed", zap.String("user", format.MaskUserID(event.UserID)))
	h.reply(ctx, event.ChatID, authFailedMessage)
}

// HandleAudio validates an inbound audio, parks it and asks the user
// which output shape they want.
func (h *Handler) HandleAudio(ctx context.Context, event domain.AudioEvent) {
	authorized, err := h.auth.IsAuthorized(ctx, event.UserID)
	if err != nil {
		h.logger.Error("authorization lookup failed", zap.Error(err))
		h.reply(ctx, event.ChatID, domain.UserMessageFor(err))
		return
	}
	if !authorized {
		h.reply(ctx, event.ChatID, authRequiredMessage)
		return
	}

	if !h.limiter.TryAcquire(event.UserID) {
		h.logger.Warn("audio rejected",
			zap.String("user", format.MaskUserID(event.UserID)),
			zap.Error(domain.ErrRateLimited))
		h.reply(ctx, event.ChatID, rateLimitedMessage)
		return
	}

	h.logger.Info("audio received",
		zap.String("user", format.MaskUserID(event.UserID)),
		zap.String("size", format.FileSize(event.DeclaredSize)),
		zap.String("filename", event.Filename))

	if err := h.service.ValidateSize(event.DeclaredSize); err != nil {
		h.reply(ctx, event.ChatID, domain.UserMessageFor(err))
		return
	}

	h.service.Register(event.UserID, entities.AudioAsset{
		FileRef:      event.FileRef,
		DeclaredSize: event.DeclaredSize,
		Filename:     event.Filename,
		DurationHint: event.DurationHint,
	})

	keyboard := [][]repositories.Choice{
		{
			{Label: "📄 Resumo", Value: shapePrefix + string(entities.ShapeSummary)},
			{Label: "📋 Ata", Value: shapePrefix + string(entities.ShapeMinutes)},
		},
		{
			{Label: "✍️ Correção", Value: shapePrefix + string(entities.ShapeCorrected)},
			{Label: "📝 Crua", Value: shapePrefix + string(entities.ShapeRaw)},
		},
	}
	if _, err := h.messenger.SendChoices(ctx, event.ChatID, chooseShapeMessage, keyboard); err != nil {
		h.logger.Error("failed to send shape menu", zap.Error(err))
		h.reply(ctx, event.ChatID, "❌ Erro ao exibir opções. Tente novamente.")
	}
}

// HandleSelection runs the transcription for the shape the user picked
// and edits the menu message into the result.
func (h *Handler) HandleSelection(ctx context.Context, event domain.SelectionEvent) {
	if err := h.messenger.AcknowledgeSelection(ctx, event.CallbackID); err != nil {
		h.logger.Warn("failed to acknowledge selection", zap.Error(err))
	}

	shape, ok := entities.ParseOutputShape(strings.TrimPrefix(event.Value, shapePrefix))
	if !ok {
		h.logger.Warn("unknown shape selected", zap.String("value", event.Value))
		h.edit(ctx, event.ChatID, event.MessageID, unknownShapeMessage)
		return
	}

	h.edit(ctx, event.ChatID, event.MessageID, fmt.Sprintf("🎙️ Processando: %s...", shape.Title()))

	outcome, err := h.service.Process(ctx, event.UserID, shape)
	if err != nil {
		if errors.Is(err, domain.ErrSelectionExpired) {
			h.edit(ctx, event.ChatID, event.MessageID, selectionExpiredMessage)
			return
		}
		h.logger.Error("transcription flow failed",
			zap.String("user", format.MaskUserID(event.UserID)),
			zap.Error(err))
		h.edit(ctx, event.ChatID, event.MessageID, domain.UserMessageFor(err))
		return
	}

	h.deliver(ctx, event.ChatID, event.MessageID, formatOutcome(outcome))
}

// deliver edits the status message into the response, spilling into
// follow-up messages when the response exceeds the platform cap.
func (h *Handler) deliver(ctx context.Context, chatID int64, messageID int, response string) {
	chunks := format.ChunkMessage(response)
	h.edit(ctx, chatID, messageID, chunks[0])
	for _, chunk := range chunks[1:] {
		h.reply(ctx, chatID, chunk)
	}
}

func formatOutcome(outcome *usecase.Outcome) string {
	lines := []string{
		"📝 " + outcome.Shape.Title(),
		"─────────────────",
		"",
		outcome.FinalText,
		"",
		"─────────────────",
		"🌐 Idioma: " + outcome.Result.LanguageName,
	}
	if outcome.Result.Duration > 0 {
		lines = append(lines, "⏱️ Duração: "+format.Duration(outcome.Result.Duration))
	}
	lines = append(lines, "⚡ Processado em: "+format.Duration(outcome.Elapsed.Seconds()))
	return strings.Join(lines, "\n")
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if _, err := h.messenger.SendText(ctx, chatID, text); err != nil {
		h.logger.Error("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, text string) {
	if err := h.messenger.EditText(ctx, chatID, messageID, text); err != nil {
		h.logger.Warn("failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err))
	}
}
