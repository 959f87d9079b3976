package tgbotapisfm

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender - часть *tgbotapi.BotAPI, нужная боту для общения с Telegram.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// SendMessage ждет лимитер и отправляет сообщение.
func (b *Bot) SendMessage(msg tgbotapi.MessageConfig) (tgbotapi.Message, error) {
	if err := b.limiter.Wait(context.Background(), msg.ChatID); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limiter: %w", err)
	}
	return b.sender.Send(msg)
}

// Reply отправляет текст в чат, из которого пришло обновление.
func (b *Bot) Reply(update tgbotapi.Update, text string) error {
	chat := update.FromChat()
	if chat == nil {
		return nil
	}
	_, err := b.SendMessage(tgbotapi.NewMessage(chat.ID, text))
	return err
}

// Request отправляет вызов без сообщения в ответ, например удаление
// сообщения или ответ на callback.
func (b *Bot) Request(c tgbotapi.Chattable, chatID int64) error {
	if err := b.limiter.Wait(context.Background(), chatID); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	_, err := b.sender.Request(c)
	return err
}

// EditMessageMedia меняет медиа отправленного сообщения.
func (b *Bot) EditMessageMedia(config tgbotapi.EditMessageMediaConfig) (tgbotapi.Message, error) {
	if err := b.limiter.Wait(context.Background(), config.ChatID); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limiter: %w", err)
	}
	return b.sender.Send(config)
}
