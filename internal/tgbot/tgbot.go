package tgbot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const updatesTimeout = 60

type TgBot struct {
	*tgbotapi.BotAPI
}

func NewTgBot(token string) (*TgBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create tg bot API")
	}
	log.Infof("authorized on tg account %s", api.Self.UserName)
	return &TgBot{
		BotAPI: api,
	}, nil
}

// ProcessUpdates feeds updates to handler one at a time until ctx is done
// or handler fails.
func (b *TgBot) ProcessUpdates(
	ctx context.Context,
	handler func(tgbotapi.Update) error,
) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updatesTimeout
	updates, err := b.BotAPI.GetUpdatesChan(u)
	if err != nil {
		return errors.Wrap(err, "failed to open tg updates channel")
	}
	defer b.BotAPI.StopReceivingUpdates()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("updates chan closed")
			}
			if err := handler(update); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (b *TgBot) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.BotAPI.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send tg message")
	}
	return nil
}

func (b *TgBot) SendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.BotAPI.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send tg keyboard")
	}
	return nil
}

func (b *TgBot) EditText(chatID int64, messageID int, text string) error {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if _, err := b.BotAPI.Send(msg); err != nil {
		return errors.Wrapf(err, "failed to edit tg message %d", messageID)
	}
	return nil
}

// AnswerCallback removes the loading animation from the pressed button.
func (b *TgBot) AnswerCallback(callbackID, text string) error {
	if _, err := b.BotAPI.AnswerCallbackQuery(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return errors.Wrap(err, "failed to answer the callback query")
	}
	return nil
}
