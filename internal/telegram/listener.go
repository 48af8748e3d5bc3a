package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const startText = `Hi! I post a Data Structures and Algorithms quiz to this chat on a schedule.
Answer the poll to see whether you got it right, along with a short explanation.
Send /info for details.`

// Listen long-polls for updates and answers /start and /info until ctx is
// cancelled. Other messages are ignored.
func (b *Bot) Listen(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	b.logger.Info("listening for commands")
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	switch update.Message.Command() {
	case "start":
		b.reply(chatID, startText)
	case "info":
		b.reply(chatID, b.infoText())
	}
}

func (b *Bot) infoText() string {
	schedule := "on a fixed schedule"
	if b.interval > 0 {
		schedule = fmt.Sprintf("every %s", b.interval)
	}
	return fmt.Sprintf("DSA quiz bot @%s.\nA new multiple-choice question on advanced data structures and algorithms is posted %s.", b.Username(), schedule)
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("failed to send reply", slog.Int64("chat_id", chatID), slog.Any("err", describe(err)))
	}
}
