package tg

import (
	"context"
	"strings"

	"dog_walking/internal/dto"
	"dog_walking/internal/metrics"
	"dog_walking/pkg/tgbotapisfm"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	stateStart         = "start"
	stateIdle          = "idle"
	stateLoginUsername = "login_username"
	stateLoginPassword = "login_password"
	stateMenu          = "menu"
	stateClients       = "clients"
	stateDogs          = "dogs"
	stateWalks         = "walks"

	// DefaultState - состояние пользователей без состояния.
	DefaultState = stateIdle
)

func (h *TGHandler) StatesMap() map[string]tgbotapisfm.State {
	return map[string]tgbotapisfm.State{
		stateStart:         h.StartState(),
		stateIdle:          h.IdleState(),
		stateLoginUsername: h.LoginUsernameState(),
		stateLoginPassword: h.LoginPasswordState(),
		stateMenu:          h.MenuState(),
		stateClients:       h.sectionState(h.clientsSection()),
		stateDogs:          h.sectionState(h.dogsSection()),
		stateWalks:         h.sectionState(h.walksSection()),
	}
}

func sendWithKeyboard(bot *tgbotapisfm.Bot, update tgbotapi.Update, text string, markup any) error {
	msg := tgbotapi.NewMessage(update.FromChat().ID, text)
	msg.ReplyMarkup = markup
	_, err := bot.SendMessage(msg)
	return err
}

func messageText(update tgbotapi.Update) string {
	if update.Message == nil {
		return ""
	}
	return update.Message.Text
}

// authed вызывает next с логином из сессии или отправляет на вход.
func (h *TGHandler) authed(next func(bot *tgbotapisfm.Bot, update tgbotapi.Update, username string) error) tgbotapisfm.Handler {
	return tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		userID := update.SentFrom().ID
		username, ok := h.sessions.Username(userID)
		if !ok {
			if err := bot.Reply(update, "Your session has expired, please log in again."); err != nil {
				return err
			}
			return bot.Enter(userID, stateLoginUsername, update)
		}
		return next(bot, update, username)
	})
}

// StartState глобальное: его команды работают из любого состояния.
func (h *TGHandler) StartState() tgbotapisfm.State {
	return tgbotapisfm.State{
		Global: true,
		MessageHandlers: map[string]tgbotapisfm.Handler{
			"/start": tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
				userID := update.SentFrom().ID
				if _, ok := h.sessions.Username(userID); ok {
					return bot.Enter(userID, stateMenu, update)
				}
				return bot.Enter(userID, stateLoginUsername, update)
			}),
			"/menu": h.authed(func(bot *tgbotapisfm.Bot, update tgbotapi.Update, _ string) error {
				return bot.Enter(update.SentFrom().ID, stateMenu, update)
			}),
			"/logout": tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
				userID := update.SentFrom().ID
				h.sessions.Logout(userID)
				bot.ResetUserState(userID)
				return sendWithKeyboard(bot, update, "Logged out. Send /start to log in again.", tgbotapi.NewRemoveKeyboard(true))
			}),
		},
	}
}

func (h *TGHandler) IdleState() tgbotapisfm.State {
	hint := tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		return bot.Reply(update, "Send /start to log in.")
	})
	return tgbotapisfm.State{CatchAllFunc: &hint}
}

func (h *TGHandler) LoginUsernameState() tgbotapisfm.State {
	entrance := tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		return sendWithKeyboard(bot, update, "Username:", tgbotapi.NewRemoveKeyboard(true))
	})
	catchAll := tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		userID := update.SentFrom().ID
		h.pending.put(userID, strings.TrimSpace(messageText(update)))
		return bot.Enter(userID, stateLoginPassword, update)
	})
	return tgbotapisfm.State{AtEntranceFunc: &entrance, CatchAllFunc: &catchAll}
}

func (h *TGHandler) LoginPasswordState() tgbotapisfm.State {
	entrance := tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		return bot.Reply(update, "Password:")
	})
	catchAll := tgbotapisfm.NewHandler(h.handlePassword)
	return tgbotapisfm.State{AtEntranceFunc: &entrance, CatchAllFunc: &catchAll}
}

func (h *TGHandler) handlePassword(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	userID := update.SentFrom().ID
	chatID := update.FromChat().ID

	// пароль не должен оставаться в истории чата
	if err := bot.Request(tgbotapi.NewDeleteMessage(chatID, update.Message.MessageID), chatID); err != nil {
		h.logger.Warn("could not delete password message", zap.Int64("chat_id", chatID), zap.Error(err))
	}

	username, ok := h.pending.take(userID)
	if !ok {
		return bot.Enter(userID, stateLoginUsername, update)
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()

	ok, err := h.services.Auth.Login(ctx, &dto.Login{Username: username, Password: update.Message.Text})
	switch {
	case err != nil && !isUserError(err):
		h.metrics.LoginAttempts.WithLabelValues(metrics.LoginError).Inc()
		_ = h.replyError(bot, update, err)
		return bot.Enter(userID, stateLoginUsername, update)
	case err != nil || !ok:
		h.metrics.LoginAttempts.WithLabelValues(metrics.LoginFailure).Inc()
		h.logger.Info("login failed", zap.Int64("user_id", userID), zap.String("login", username))
		if err := bot.Reply(update, "Wrong username or password."); err != nil {
			return err
		}
		return bot.Enter(userID, stateLoginUsername, update)
	}

	h.metrics.LoginAttempts.WithLabelValues(metrics.LoginSuccess).Inc()
	h.sessions.Login(userID, username)
	h.logger.Info("user logged in", zap.Int64("user_id", userID), zap.String("login", username))
	if err := bot.Reply(update, "Welcome, "+username+"!"); err != nil {
		return err
	}
	return bot.Enter(userID, stateMenu, update)
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Clients"),
			tgbotapi.NewKeyboardButton("Dogs"),
			tgbotapi.NewKeyboardButton("Walks"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/logout"),
		),
	)
}

func (h *TGHandler) MenuState() tgbotapisfm.State {
	show := tgbotapisfm.NewHandler(func(bot *tgbotapisfm.Bot, update tgbotapi.Update) error {
		return sendWithKeyboard(bot, update, "Main menu: choose Clients, Dogs or Walks.", menuKeyboard())
	})
	open := func(state string) tgbotapisfm.Handler {
		return h.authed(func(bot *tgbotapisfm.Bot, update tgbotapi.Update, _ string) error {
			return bot.Enter(update.SentFrom().ID, state, update)
		})
	}
	return tgbotapisfm.State{
		AtEntranceFunc: &show,
		CatchAllFunc:   &show,
		MessageHandlers: map[string]tgbotapisfm.Handler{
			"clients": open(stateClients),
			"dogs":    open(stateDogs),
			"walks":   open(stateWalks),
		},
	}
}

func (h *TGHandler) clientsSection() section {
	svc := h.services.Clients
	return section{
		name:  stateClients,
		title: "Clients",
		form:  "<name>; <phone>",
		list: func(ctx context.Context) ([]string, error) {
			rows, err := svc.GetAll(ctx)
			return mapLines(rows, formatClient), err
		},
		find: func(ctx context.Context, term string) ([]string, error) {
			rows, err := svc.Search(ctx, term)
			return mapLines(rows, formatClient), err
		},
		show: func(ctx context.Context, id uint) (string, error) {
			c, err := svc.GetByID(ctx, id)
			if err != nil || c == nil {
				return "", err
			}
			return formatClient(*c), nil
		},
		add: func(ctx context.Context, form string) (uint, error) {
			in, err := parseClient(form)
			if err != nil {
				return 0, err
			}
			return svc.Add(ctx, in)
		},
		edit: func(ctx context.Context, id uint, form string) error {
			in, err := parseClient(form)
			if err != nil {
				return err
			}
			return svc.Update(ctx, id, in)
		},
		del: svc.Delete,
	}
}

func (h *TGHandler) dogsSection() section {
	svc := h.services.Dogs
	return section{
		name:  stateDogs,
		title: "Dogs",
		form:  "<client id>; <name>; <breed>; <age>",
		list: func(ctx context.Context) ([]string, error) {
			rows, err := svc.GetAll(ctx)
			return mapLines(rows, formatDog), err
		},
		find: func(ctx context.Context, term string) ([]string, error) {
			rows, err := svc.Search(ctx, term)
			return mapLines(rows, formatDog), err
		},
		show: func(ctx context.Context, id uint) (string, error) {
			d, err := svc.GetByID(ctx, id)
			if err != nil || d == nil {
				return "", err
			}
			return formatDog(*d), nil
		},
		add: func(ctx context.Context, form string) (uint, error) {
			in, err := parseDog(form)
			if err != nil {
				return 0, err
			}
			return svc.Add(ctx, in)
		},
		edit: func(ctx context.Context, id uint, form string) error {
			in, err := parseDog(form)
			if err != nil {
				return err
			}
			return svc.Update(ctx, id, in)
		},
		del: svc.Delete,
		of: func(ctx context.Context, clientID uint) ([]string, error) {
			rows, err := svc.GetByClient(ctx, clientID)
			return mapLines(rows, formatDog), err
		},
		ofHelp: "of <client id> - dogs of a client",
	}
}

func (h *TGHandler) walksSection() section {
	svc := h.services.Walks
	format := func(w dto.Walk) string { return formatWalk(w, h.location) }
	return section{
		name:  stateWalks,
		title: "Walks",
		form:  "<dog id>; <YYYY-MM-DD HH:MM>; <minutes>",
		list: func(ctx context.Context) ([]string, error) {
			rows, err := svc.GetAll(ctx)
			return mapLines(rows, format), err
		},
		find: func(ctx context.Context, term string) ([]string, error) {
			rows, err := svc.Search(ctx, term)
			return mapLines(rows, format), err
		},
		show: func(ctx context.Context, id uint) (string, error) {
			w, err := svc.GetByID(ctx, id)
			if err != nil || w == nil {
				return "", err
			}
			return format(*w), nil
		},
		add: func(ctx context.Context, form string) (uint, error) {
			in, err := parseWalk(form, h.location)
			if err != nil {
				return 0, err
			}
			return svc.Add(ctx, in)
		},
		edit: func(ctx context.Context, id uint, form string) error {
			in, err := parseWalk(form, h.location)
			if err != nil {
				return err
			}
			return svc.Update(ctx, id, in)
		},
		del: svc.Delete,
		of: func(ctx context.Context, dogID uint) ([]string, error) {
			rows, err := svc.GetByDog(ctx, dogID)
			return mapLines(rows, format), err
		},
		ofHelp: "of <dog id> - walks of a dog",
		onSave: h.signalJournal,
	}
}
