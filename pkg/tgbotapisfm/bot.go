// Package tgbotapisfm - небольшой слой конечного автомата поверх telegram-bot-api.
// Каждый пользователь находится в одном именованном State в кеше с истечением;
// обновления идут сначала в глобальные состояния, затем в состояние пользователя.
package tgbotapisfm

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"dog_walking/pkg/zaplogger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type Config struct {
	Token           string
	Expiration      time.Duration // сколько хранится состояние пользователя
	CleanupInterval time.Duration
	States          map[string]State
	// DefaultState для пользователей без состояния или с истекшим состоянием.
	// Пустое значение - такие обновления видят только глобальные состояния.
	DefaultState string
}

type Bot struct {
	// BotAPI равен nil, если бот создан со своим Sender.
	BotAPI *tgbotapi.BotAPI

	sender        Sender
	expiration    time.Duration
	defaultState  string
	limiter       *Limiter
	cache         *gocache.Cache
	logger        *zap.Logger
	states        map[string]State
	globalStates  []*State
	updateHandler HandlerFunc
	mu            sync.RWMutex // захвачен на запись, пока бот запущен
	statesMu      sync.RWMutex

	IgnoreList []int64
}

// NewBot подключается к Telegram по cfg.Token.
// logger необязателен; без него создается JSON-логгер.
func NewBot(cfg Config, ignoreList []int64, logger ...*zap.Logger) (*Bot, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, ErrInvalidToken
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, NewValidationError(ErrTelegramInit, err)
	}

	b, err := NewBotWithSender(cfg, botAPI, ignoreList, logger...)
	if err != nil {
		return nil, err
	}
	b.BotAPI = botAPI
	return b, nil
}

// NewBotWithSender создает бота, который отправляет через sender и сам
// не опрашивает Telegram; обновления подаются через HandleUpdate.
func NewBotWithSender(cfg Config, sender Sender, ignoreList []int64, logger ...*zap.Logger) (*Bot, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, ErrNilSender
	}
	if cfg.States == nil {
		cfg.States = make(map[string]State)
	}
	if cfg.DefaultState != "" {
		if _, ok := cfg.States[cfg.DefaultState]; !ok {
			return nil, NewValidationError(ErrStateHandlerNotFound, cfg.DefaultState)
		}
	}

	var zapLogger *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		zapLogger = logger[0]
	} else {
		var err error
		zapLogger, err = zaplogger.New("info")
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
	}

	return &Bot{
		sender:       sender,
		limiter:      NewLimiter(),
		cache:        gocache.New(cfg.Expiration, cfg.CleanupInterval),
		states:       cfg.States,
		globalStates: globalStatesOf(cfg.States),
		expiration:   cfg.Expiration,
		defaultState: cfg.DefaultState,
		logger:       zapLogger,
		IgnoreList:   ignoreList,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Expiration < 0 {
		return NewValidationError(ErrNegativeExpiration, cfg.Expiration)
	}
	if cfg.CleanupInterval < 0 {
		return NewValidationError(ErrNegativeCleanup, cfg.CleanupInterval)
	}
	return nil
}

// SetLogger вызывать до Start.
func (b *Bot) SetLogger(logger *zap.Logger) error {
	if !b.mu.TryRLock() {
		return NewValidationError(ErrBotStarted, "logger")
	}
	defer b.mu.RUnlock()

	b.logger = logger
	return nil
}

// SetUpdateHandler ставит хук, который видит каждое обновление до маршрутизации.
// Вызывать до Start.
func (b *Bot) SetUpdateHandler(handler HandlerFunc) error {
	if !b.mu.TryRLock() {
		return NewValidationError(ErrBotStarted, "update handler")
	}
	defer b.mu.RUnlock()

	b.updateHandler = handler
	return nil
}

// SetLimiter заменяет лимитер исходящих запросов. Вызывать до Start.
func (b *Bot) SetLimiter(l *Limiter) error {
	if !b.mu.TryRLock() {
		return NewValidationError(ErrBotStarted, "limiter")
	}
	defer b.mu.RUnlock()

	b.limiter = l
	return nil
}

// Start опрашивает Telegram в горутине. Канал отдает ошибку, остановившую
// цикл, если она была, и затем закрывается.
func (b *Bot) Start(offset, timeout int) chan error {
	errChan := make(chan error, 1)

	if b.BotAPI == nil {
		errChan <- fmt.Errorf("bot has no telegram api to poll")
		close(errChan)
		return errChan
	}
	if !b.mu.TryLock() {
		b.logger.Warn("bot is already running")
		errChan <- ErrBotStarted
		close(errChan)
		return errChan
	}

	b.logger.Info("starting bot", zap.String("username", b.BotAPI.Self.UserName))
	go func() {
		if err := b.HandleUpdates(offset, timeout); err != nil {
			errChan <- err
		}
		close(errChan)
	}()

	return errChan
}

// Stop завершает опрос. Только после Start.
func (b *Bot) Stop() {
	b.BotAPI.StopReceivingUpdates()
	b.mu.Unlock()
	b.logger.Info("update polling stopped")
}

func (b *Bot) HandleUpdates(offset, timeout int) error {
	u := tgbotapi.NewUpdate(offset)
	u.Timeout = timeout
	updates := b.BotAPI.GetUpdatesChan(u)
	b.logger.Info("handling updates")

	for update := range updates {
		if err := b.HandleUpdate(update); err != nil {
			return err
		}
	}
	return nil
}

// HandleUpdate маршрутизирует одно обновление. Ошибки обработчиков логируются;
// возвращается только ошибка хука или ссылка на незарегистрированное состояние.
func (b *Bot) HandleUpdate(update tgbotapi.Update) error {
	if b.updateHandler != nil {
		if err := b.updateHandler(b, update); err != nil {
			b.logger.Error("update handler failed", zap.Error(err))
			return fmt.Errorf("update handler error: %w", err)
		}
	}

	from := update.SentFrom()
	if from == nil {
		return nil
	}
	if slices.Contains(b.IgnoreList, from.ID) {
		return nil
	}
	if chat := update.FromChat(); chat != nil && slices.Contains(b.IgnoreList, chat.ID) {
		return nil
	}

	if b.HandleGlobalStates(update) {
		return nil
	}

	stateName, err := b.GetUserState(from.ID)
	if err != nil {
		if b.defaultState == "" {
			b.logger.Debug("no state for user", zap.Int64("user_id", from.ID), zap.Error(err))
			return nil
		}
		stateName = b.defaultState
	}

	b.statesMu.RLock()
	state, ok := b.states[stateName]
	b.statesMu.RUnlock()
	if !ok {
		b.logger.Error("state not found in states map", zap.String("state", stateName))
		return NewValidationError(ErrStateHandlerNotFound, stateName)
	}

	if _, err := b.SelectHandler(update, &state); err != nil {
		b.logger.Error("failed to handle user state", zap.String("state", stateName), zap.Error(err))
	}
	return nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserState возвращает имя состояния пользователя.
func (b *Bot) GetUserState(userID int64) (string, error) {
	v, ok := b.cache.Get(userKey(userID))
	if !ok {
		return "", ErrStateNotFound
	}

	state, ok := v.(string)
	if !ok {
		return "", ErrInvalidStateType
	}
	return state, nil
}

func (b *Bot) SetUserState(userID int64, state string) error {
	b.statesMu.RLock()
	_, ok := b.states[state]
	b.statesMu.RUnlock()

	if !ok {
		return NewValidationError(ErrStateHandlerNotFound, state)
	}

	b.cache.Set(userKey(userID), state, b.expiration)
	return nil
}

// ResetUserState забывает состояние пользователя.
func (b *Bot) ResetUserState(userID int64) {
	b.cache.Delete(userKey(userID))
}

// Enter переводит пользователя в state и запускает обработчик входа.
func (b *Bot) Enter(userID int64, state string, update tgbotapi.Update) error {
	if err := b.SetUserState(userID, state); err != nil {
		return err
	}

	b.statesMu.RLock()
	s := b.states[state]
	b.statesMu.RUnlock()

	if s.AtEntranceFunc != nil {
		return s.AtEntranceFunc.Handle(b, update)
	}
	return nil
}

// SetUserStateImmediate переводит пользователя в state, запускает обработчик входа
// и прогоняет текущее обновление через новое состояние.
func (b *Bot) SetUserStateImmediate(userID int64, state string, update tgbotapi.Update) error {
	if err := b.Enter(userID, state, update); err != nil {
		b.logger.Error("failed to handle entrance function", zap.String("state", state), zap.Error(err))
	}

	b.statesMu.RLock()
	s, ok := b.states[state]
	b.statesMu.RUnlock()
	if !ok {
		return NewValidationError(ErrStateHandlerNotFound, state)
	}

	if _, err := b.SelectHandler(update, &s); err != nil {
		b.logger.Error("failed to handle immediate reaction", zap.Error(err))
	}
	return nil
}

// HandleGlobalStates сообщает, обработало ли обновление глобальное состояние.
func (b *Bot) HandleGlobalStates(update tgbotapi.Update) bool {
	b.statesMu.RLock()
	globals := b.globalStates
	b.statesMu.RUnlock()

	for _, state := range globals {
		found, err := b.SelectHandler(update, state)
		if err != nil {
			b.logger.Error("failed to handle global state", zap.Error(err))
			continue
		}
		if found {
			return true
		}
	}
	return false
}

// SelectHandler запускает подходящий обработчик userState и сообщает,
// нашелся ли он в его картах.
func (b *Bot) SelectHandler(update tgbotapi.Update, userState *State) (bool, error) {
	switch {
	case update.Message != nil:
		return b.handleMessage(userState, update)
	case update.CallbackQuery != nil:
		return b.handleCallback(userState, update)
	}
	return false, nil
}

func (b *Bot) handleMessage(userState *State, update tgbotapi.Update) (bool, error) {
	fields := []zap.Field{zap.Int64("chat_id", update.Message.Chat.ID)}
	if from := update.SentFrom(); from != nil {
		fields = append(fields, zap.String("username", from.UserName))
	}
	key := strings.ToLower(strings.TrimSpace(update.Message.Text))

	if action, ok := userState.MessageHandlers[key]; ok {
		if err := action.Handle(b, update); err != nil {
			b.logger.Error("failed to handle command", append(fields, zap.String("command", key), zap.Error(err))...)
		} else {
			b.logger.Debug("command handled", append(fields, zap.String("command", key))...)
		}
		return true, nil
	}

	if userState.CatchAllFunc != nil {
		if err := userState.CatchAllFunc.Handle(b, update); err != nil {
			b.logger.Error("failed to handle message", append(fields, zap.Error(err))...)
		}
	}
	return false, nil
}

func (b *Bot) handleCallback(userState *State, update tgbotapi.Update) (bool, error) {
	fields := []zap.Field{
		zap.String("callback", update.CallbackQuery.Data),
		zap.Int64("user_id", update.CallbackQuery.From.ID),
		zap.String("username", update.CallbackQuery.From.UserName),
	}

	if action, ok := userState.CallbackHandlers[update.CallbackQuery.Data]; ok {
		if err := action.Handle(b, update); err != nil {
			b.logger.Error("failed to handle callback", append(fields, zap.Error(err))...)
			return true, err
		}
		b.logger.Debug("callback handled", fields...)
		return true, nil
	}

	if userState.CatchAllFunc != nil {
		if err := userState.CatchAllFunc.Handle(b, update); err != nil {
			b.logger.Error("failed to handle callback", append(fields, zap.Error(err))...)
		}
	}
	return false, nil
}

// ReplaceStates заменяет всю таблицу состояний.
func (b *Bot) ReplaceStates(newStates map[string]State) {
	b.statesMu.Lock()
	defer b.statesMu.Unlock()

	b.states = newStates
	b.globalStates = globalStatesOf(newStates)
	b.logger.Info("bot states replaced", zap.Int("count", len(newStates)))
}
