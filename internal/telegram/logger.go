package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// slogAdapter routes the Bot API library's own log lines into slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Println(v ...any) {
	a.logger.Warn(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (a slogAdapter) Printf(format string, v ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// UseLogger makes the Bot API library log through logger. The library's
// logger is package-global.
func UseLogger(logger *slog.Logger) {
	_ = tgbotapi.SetLogger(slogAdapter{logger: logger.With(slog.String("component", "tgbotapi"))})
}
