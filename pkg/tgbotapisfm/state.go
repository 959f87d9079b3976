package tgbotapisfm

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// HandlerFunc обрабатывает одно обновление.
type HandlerFunc func(bot *Bot, update tgbotapi.Update) error

type Handler struct {
	Handle HandlerFunc
}

func NewHandler(f HandlerFunc) Handler {
	return Handler{Handle: f}
}

// State описывает маршрутизацию обновлений, пока пользователь в нем.
//
// MessageHandlers - по тексту сообщения в нижнем регистре без пробелов по краям,
// CallbackHandlers - по точным данным callback. CatchAllFunc обрабатывает то,
// что не нашлось в картах; у глобальных состояний он должен быть nil, иначе
// они перехватят все обновления. AtEntranceFunc вызывается, когда
// SetUserStateImmediate или Enter переводит пользователя в состояние.
type State struct {
	Global           bool
	MessageHandlers  map[string]Handler
	CallbackHandlers map[string]Handler
	AtEntranceFunc   *Handler
	CatchAllFunc     *Handler
}

func globalStatesOf(states map[string]State) []*State {
	out := make([]*State, 0)
	for _, state := range states {
		if state.Global {
			s := state
			out = append(out, &s)
		}
	}
	return out
}
