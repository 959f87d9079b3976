package tg

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Sessions связывает пользователя Telegram с пользователем реестра.
// Запись истекает после TTL бездействия.
type Sessions struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		cache: gocache.New(ttl, time.Hour),
		ttl:   ttl,
	}
}

func sessionKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

func (s *Sessions) Login(userID int64, username string) {
	s.cache.Set(sessionKey(userID), username, s.ttl)
}

// Username возвращает логин и продлевает сессию.
func (s *Sessions) Username(userID int64) (string, bool) {
	v, ok := s.cache.Get(sessionKey(userID))
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	if !ok {
		return "", false
	}
	s.cache.Set(sessionKey(userID), username, s.ttl)
	return username, true
}

func (s *Sessions) Logout(userID int64) {
	s.cache.Delete(sessionKey(userID))
}

// pendingLogins хранит логин, введенный до запроса пароля.
type pendingLogins struct {
	cache *gocache.Cache
}

func newPendingLogins() *pendingLogins {
	return &pendingLogins{cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (p *pendingLogins) put(userID int64, username string) {
	p.cache.SetDefault(sessionKey(userID), username)
}

func (p *pendingLogins) take(userID int64) (string, bool) {
	key := sessionKey(userID)
	v, ok := p.cache.Get(key)
	if !ok {
		return "", false
	}
	p.cache.Delete(key)
	username, ok := v.(string)
	return username, ok
}
