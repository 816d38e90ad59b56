// Package telegram exposes the finder as a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/finder"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/formatter"
	"github.com/FACorreiaa/go-gas-station-finder/internal/types"
)

var commands = []string{"/start", "/help", "/about", "/example", "/commands"}

type Bot struct {
	bot     *tele.Bot
	handler *Handler
	logger  *slog.Logger
}

// NewBot connects to the Bot API and registers the command and text handlers.
// Updates are handled concurrently, one goroutine per update.
func NewBot(token string, pollTimeout time.Duration, service finder.Service, logger *slog.Logger) (*Bot, error) {
	if pollTimeout <= 0 {
		pollTimeout = 10 * time.Second
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
		OnError: func(err error, c tele.Context) {
			attrs := []any{slog.Any("error", err)}
			if c != nil && c.Chat() != nil {
				attrs = append(attrs, slog.Int64("chat_id", c.Chat().ID))
			}
			logger.Error("Telegram handler error", attrs...)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	h := NewHandler(service, logger)
	for _, cmd := range commands {
		b.Handle(cmd, func(c tele.Context) error {
			return h.Command(teleChat{c: c}, cmd)
		})
	}
	b.Handle(tele.OnText, func(c tele.Context) error {
		return h.Message(context.Background(), teleChat{c: c}, c.Text())
	})

	return &Bot{bot: b, handler: h, logger: logger}, nil
}

// Run polls until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("Starting Telegram bot", slog.String("username", b.bot.Me.Username))
	go b.bot.Start()
	<-ctx.Done()
	b.bot.Stop()
	b.logger.Info("Telegram bot stopped")
}

// Handler drives one conversation turn against a Chat.
type Handler struct {
	service finder.Service
	logger  *slog.Logger
}

func NewHandler(service finder.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Command answers one of the static bot commands.
func (h *Handler) Command(chat Chat, command string) error {
	text, ok := formatter.CommandText(command)
	if !ok {
		text = formatter.HelpText
	}
	_, err := chat.Send(text)
	return err
}

// Message runs the pipeline for text. The first status update is sent as a new
// message and later ones edit it; once the export is delivered the status message
// is deleted and the preview sent as a fresh reply.
func (h *Handler) Message(ctx context.Context, chat Chat, text string) error {
	searchID := uuid.New()
	ctx = appMiddleware.WithSearchID(ctx, searchID)
	l := h.logger.With(slog.String("search_id", searchID.String()))

	if err := chat.Typing(); err != nil {
		l.DebugContext(ctx, "Failed to send typing action", slog.Any("error", err))
	}

	var status *tele.Message
	progress := func(update string) {
		if status == nil {
			msg, err := chat.Send(update)
			if err != nil {
				l.WarnContext(ctx, "Failed to send status message", slog.Any("error", err))
				return
			}
			status = msg
			return
		}
		if err := chat.Edit(status, update); err != nil {
			l.WarnContext(ctx, "Failed to edit status message", slog.Any("error", err))
		}
	}

	result, err := h.service.HandleWithProgress(ctx, text, progress)
	if err != nil {
		l.ErrorContext(ctx, "Pipeline failed", slog.Any("error", err))
		return h.finish(chat, status, formatter.TryAgainText)
	}

	if result.Export == nil {
		return h.finish(chat, status, result.FinalText)
	}

	caption := formatter.ExportCaption(queriesOf(result.Results), formatter.TotalStations(result.Results))
	if err := chat.SendDocument(result.Export, caption); err != nil {
		l.ErrorContext(ctx, "Failed to send export", slog.String("file", result.Export.Filename), slog.Any("error", err))
		return h.finish(chat, status, formatter.TryAgainText)
	}
	if status != nil {
		if err := chat.Delete(status); err != nil {
			l.WarnContext(ctx, "Failed to delete status message", slog.Any("error", err))
		}
	}
	_, err = chat.Send(result.FinalText)
	return err
}

// finish replaces the status message with text, or sends text when there is none.
func (h *Handler) finish(chat Chat, status *tele.Message, text string) error {
	if status != nil {
		if err := chat.Edit(status, text); err == nil {
			return nil
		}
	}
	_, err := chat.Send(text)
	return err
}

func queriesOf(results []types.QueryResult) []types.Query {
	qs := make([]types.Query, len(results))
	for i, r := range results {
		qs[i] = r.Query
	}
	return qs
}
