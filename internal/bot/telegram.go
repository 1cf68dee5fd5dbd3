package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Long-polling parameters
const (
	pollTimeoutSeconds = 30
)

// Telegram is the chat transport: long-polling inbound updates and chunked
// outbound sends.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	logger zerolog.Logger
}

// NewTelegram connects to the Bot API with the given token.
func NewTelegram(token string, logger zerolog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	t := &Telegram{
		bot:    api,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
	t.logger.Info().Str("username", api.Self.UserName).Msg("authorized on telegram")
	return t, nil
}

// Send delivers text to a chat, pre-chunking it so no single message
// exceeds the transport limit.
func (t *Telegram) Send(chatID int64, text string) error {
	for _, segment := range SplitMessage(text, MaxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, segment)
		if _, err := t.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// Run polls for updates until ctx is cancelled, dispatching each text
// message to handle in its own goroutine so one slow download does not
// block other chats.
func (t *Telegram) Run(ctx context.Context, handle func(context.Context, InboundMessage)) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			msg := InboundMessage{
				Text:     update.Message.Text,
				SenderID: update.Message.From.ID,
				ChatID:   update.Message.Chat.ID,
			}
			go handle(ctx, msg)
		}
	}
}
