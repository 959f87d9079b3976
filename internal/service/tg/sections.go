package tg

import (
	"context"
	"fmt"
	"strings"

	"dog_walking/pkg/tgbotapisfm"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// section - набор команд экрана одной сущности.
type section struct {
	name  string
	title string
	form  string // порядок полей для add/edit

	list func(ctx context.Context) ([]string, error)
	find func(ctx context.Context, term string) ([]string, error)
	show func(ctx context.Context, id uint) (string, error) // "", если строки нет
	add  func(ctx context.Context, form string) (uint, error)
	edit func(ctx context.Context, id uint, form string) error
	del  func(ctx context.Context, id uint) error

	// необязательный фильтр "of <id>" по родителю
	of     func(ctx context.Context, id uint) ([]string, error)
	ofHelp string

	// вызывается после успешного add или edit
	onSave func()
}

func (s section) help() string {
	lines := []string{
		s.title + " commands:",
		"list - show all",
		"find <text> - search",
		"show <id> - show one",
		"add " + s.form + " - create",
		"edit <id> " + s.form + " - change",
		"del <id> - delete",
	}
	if s.of != nil {
		lines = append(lines, s.ofHelp)
	}
	lines = append(lines, "back - main menu")
	return strings.Join(lines, "\n")
}

func sectionKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("list"),
			tgbotapi.NewKeyboardButton("help"),
			tgbotapi.NewKeyboardButton("back"),
		),
	)
}

func (h *TGHandler) sectionState(s section) tgbotapisfm.State {
	run := func(verb string) tgbotapisfm.Handler {
		return h.authed(func(bot *tgbotapisfm.Bot, update tgbotapi.Update, username string) error {
			return h.runCommand(bot, update, username, s, command{verb: verb})
		})
	}
	catchAll := h.authed(func(bot *tgbotapisfm.Bot, update tgbotapi.Update, username string) error {
		return h.runCommand(bot, update, username, s, parseCommand(messageText(update)))
	})
	entrance := tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		return sendWithKeyboard(bot, update, s.help(), sectionKeyboard())
	})

	return tgbotapisfm.State{
		AtEntranceFunc: &entrance,
		CatchAllFunc:   &catchAll,
		MessageHandlers: map[string]tgbotapisfm.Handler{
			"list": run("list"),
			"help": tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
				return bot.Reply(update, s.help())
			}),
			"back": h.authed(func(bot *tgbotapisfm.Bot, update tgbotapi.Update, _ string) error {
				return bot.Enter(update.SentFrom().ID, stateMenu, update)
			}),
		},
	}
}

func (h *TGHandler) runCommand(bot *tgbotapisfm.Bot, update tgbotapi.Update, username string, s section, cmd command) error {
	ctx, cancel := h.actorContext(username)
	defer cancel()

	reply, err := h.execute(ctx, s, cmd)
	h.metrics.BotCommands.WithLabelValues(s.name, cmd.verb, outcome(err)).Inc()
	if err != nil {
		return h.replyError(bot, update, err)
	}
	return bot.Reply(update, reply)
}

func (h *TGHandler) execute(ctx context.Context, s section, cmd command) (string, error) {
	switch cmd.verb {
	case "list":
		lines, err := s.list(ctx)
		if err != nil {
			return "", err
		}
		return formatList(s.title, lines), nil

	case "find":
		lines, err := s.find(ctx, cmd.args)
		if err != nil {
			return "", err
		}
		return formatList(s.title, lines), nil

	case "show":
		id, err := parseID(cmd.args)
		if err != nil {
			return "", err
		}
		line, err := s.show(ctx, id)
		if err != nil {
			return "", err
		}
		if line == "" {
			return fmt.Sprintf("Nothing with id %d.", id), nil
		}
		return line, nil

	case "add":
		id, err := s.add(ctx, cmd.args)
		if err != nil {
			return "", err
		}
		if s.onSave != nil {
			s.onSave()
		}
		return fmt.Sprintf("Saved with id %d.", id), nil

	case "edit":
		id, form, err := splitIDArgs(cmd.args)
		if err != nil {
			return "", err
		}
		if err := s.edit(ctx, id, form); err != nil {
			return "", err
		}
		if s.onSave != nil {
			s.onSave()
		}
		return fmt.Sprintf("Updated %d.", id), nil

	case "del", "delete":
		id, err := parseID(cmd.args)
		if err != nil {
			return "", err
		}
		if err := s.del(ctx, id); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %d.", id), nil

	case "of":
		if s.of == nil {
			break
		}
		id, err := parseID(cmd.args)
		if err != nil {
			return "", err
		}
		lines, err := s.of(ctx, id)
		if err != nil {
			return "", err
		}
		return formatList(s.title, lines), nil
	}
	return "Unknown command.\n\n" + s.help(), nil
}
