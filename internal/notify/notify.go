// Package notify delivers formatted dashboard messages.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Notifier sends a rendered message somewhere
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Sender is the slice of the bot API the notifier needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts Markdown messages to a single chat
type Telegram struct {
	bot    Sender
	chatID int64
	logger zerolog.Logger
}

// NewTelegram logs the bot in and targets chatID
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initializing telegram bot: %w", err)
	}
	t := NewTelegramWithSender(bot, chatID)
	t.logger.Info().Str("bot", bot.Self.UserName).Msg("Authorized on Telegram")
	return t, nil
}

// NewTelegramWithSender wraps an existing sender
func NewTelegramWithSender(bot Sender, chatID int64) *Telegram {
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}
}

// Notify sends text as Markdown
func (t *Telegram) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending message to chat %d: %w", t.chatID, err)
	}
	t.logger.Debug().Int64("chat_id", t.chatID).Int("length", len(text)).Msg("Message sent")
	return nil
}
