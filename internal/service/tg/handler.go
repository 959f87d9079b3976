// Package tg - телеграм-интерфейс реестра: вход, главное меню
// и по разделу на сущность с короткими текстовыми командами.
package tg

import (
	"context"
	"errors"
	"time"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/metrics"
	"dog_walking/pkg/tgbotapisfm"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const callTimeout = 10 * time.Second

type ClientService interface {
	Add(ctx context.Context, in *dto.Client) (uint, error)
	GetAll(ctx context.Context) ([]dto.Client, error)
	Search(ctx context.Context, term string) ([]dto.Client, error)
	GetByID(ctx context.Context, id uint) (*dto.Client, error)
	Update(ctx context.Context, id uint, in *dto.Client) error
	Delete(ctx context.Context, id uint) error
}

type DogService interface {
	Add(ctx context.Context, in *dto.Dog) (uint, error)
	GetAll(ctx context.Context) ([]dto.Dog, error)
	Search(ctx context.Context, term string) ([]dto.Dog, error)
	GetByClient(ctx context.Context, clientID uint) ([]dto.Dog, error)
	GetByID(ctx context.Context, id uint) (*dto.Dog, error)
	Update(ctx context.Context, id uint, in *dto.Dog) error
	Delete(ctx context.Context, id uint) error
}

type WalkService interface {
	Add(ctx context.Context, in *dto.Walk) (uint, error)
	GetAll(ctx context.Context) ([]dto.Walk, error)
	Search(ctx context.Context, term string) ([]dto.Walk, error)
	GetByDog(ctx context.Context, dogID uint) ([]dto.Walk, error)
	GetByID(ctx context.Context, id uint) (*dto.Walk, error)
	Update(ctx context.Context, id uint, in *dto.Walk) error
	Delete(ctx context.Context, id uint) error
}

type AuthService interface {
	Login(ctx context.Context, in *dto.Login) (bool, error)
}

type Services struct {
	Auth    AuthService
	Clients ClientService
	Dogs    DogService
	Walks   WalkService
}

type TGHandler struct {
	services    Services
	sessions    *Sessions
	pending     *pendingLogins
	logger      *zap.Logger
	metrics     *metrics.Metrics
	forceUpdate chan struct{}
	location    *time.Location
}

// NewTGHandler собирает обработчики. В forceUpdate неблокирующе сигналим
// после сохранения прогулки; nil, если журнал выключен.
func NewTGHandler(services Services, sessions *Sessions, m *metrics.Metrics, forceUpdate chan struct{}, logger *zap.Logger) (*TGHandler, error) {
	switch {
	case services.Auth == nil, services.Clients == nil, services.Dogs == nil, services.Walks == nil:
		return nil, domain.ErrMissingArgument
	case sessions == nil:
		return nil, domain.ErrMissingArgument
	}
	if m == nil {
		m = metrics.New()
	}
	return &TGHandler{
		services:    services,
		sessions:    sessions,
		pending:     newPendingLogins(),
		logger:      logger,
		metrics:     m,
		forceUpdate: forceUpdate,
		location:    time.UTC,
	}, nil
}

// SetLocation задает пояс ввода и вывода дат прогулок. По умолчанию UTC.
func (h *TGHandler) SetLocation(loc *time.Location) {
	if loc != nil {
		h.location = loc
	}
}

// LogUpdate ставится хуком на каждое обновление бота.
func (h *TGHandler) LogUpdate(_ *tgbotapisfm.Bot, update tgbotapi.Update) error {
	fields := []zap.Field{zap.Int("update_id", update.UpdateID)}
	if from := update.SentFrom(); from != nil {
		fields = append(fields, zap.Int64("user_id", from.ID), zap.String("username", from.UserName))
	}
	h.logger.Debug("update received", fields...)
	return nil
}

// actorContext добавляет логин пользователя для аудита.
func (h *TGHandler) actorContext(username string) (context.Context, context.CancelFunc) {
	return context.WithTimeout(domain.WithActor(context.Background(), username), callTimeout)
}

func (h *TGHandler) signalJournal() {
	if h.forceUpdate == nil {
		return
	}
	select {
	case h.forceUpdate <- struct{}{}:
	default:
	}
}

// outcome классифицирует err для метрик.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case isUserError(err):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrMissingArgument) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, errBadInput)
}

// replyError показывает пользовательские ошибки как есть; остальные логируются
// под номером, который пользователь может сообщить.
func (h *TGHandler) replyError(bot *tgbotapisfm.Bot, update tgbotapi.Update, err error) error {
	if isUserError(err) {
		return bot.Reply(update, err.Error())
	}
	ref := uuid.NewString()[:8]
	h.logger.Error("command failed", zap.String("ref", ref), zap.Error(err))
	return bot.Reply(update, "Something went wrong, please try again later (ref "+ref+").")
}
