package tgbotapisfm

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Telegram допускает около 30 сообщений в секунду всего и одно в секунду на чат.
const (
	DefaultGlobalRate = 30
	DefaultChatRate   = 1
	DefaultChatBurst  = 3

	chatLimiterTTL = 10 * time.Minute
)

// Limiter ограничивает исходящие запросы глобально и по чатам.
type Limiter struct {
	global    *rate.Limiter
	chatRate  rate.Limit
	chatBurst int

	mu    sync.Mutex
	chats *gocache.Cache
}

func NewLimiter() *Limiter {
	return NewLimiterWithRates(DefaultGlobalRate, DefaultChatRate, DefaultChatBurst)
}

func NewLimiterWithRates(global, perChat rate.Limit, chatBurst int) *Limiter {
	return &Limiter{
		global:    rate.NewLimiter(global, int(global)),
		chatRate:  perChat,
		chatBurst: chatBurst,
		chats:     gocache.New(chatLimiterTTL, 2*chatLimiterTTL),
	}
}

func (l *Limiter) chat(chatID int64) *rate.Limiter {
	key := strconv.FormatInt(chatID, 10)

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.chats.Get(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			l.chats.SetDefault(key, lim)
			return lim
		}
	}
	lim := rate.NewLimiter(l.chatRate, l.chatBurst)
	l.chats.SetDefault(key, lim)
	return lim
}

// Wait блокирует, пока запрос в chatID не разрешен. Нулевой chatID
// расходует только глобальный лимит.
func (l *Limiter) Wait(ctx context.Context, chatID int64) error {
	if chatID != 0 {
		if err := l.chat(chatID).Wait(ctx); err != nil {
			return err
		}
	}
	return l.global.Wait(ctx)
}

// Allow сообщает, можно ли отправить запрос прямо сейчас.
func (l *Limiter) Allow(chatID int64) bool {
	if chatID != 0 && !l.chat(chatID).Allow() {
		return false
	}
	return l.global.Allow()
}
