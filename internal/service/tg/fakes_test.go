package tg

import (
	"context"
	"strings"
	"sync"

	"dog_walking/internal/domain"
	"dog_walking/internal/dto"
	"dog_walking/internal/validator"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	mu      sync.Mutex
	texts   []string
	deleted []int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := c.(tgbotapi.DeleteMessageConfig); ok {
		f.deleted = append(f.deleted, d.MessageID)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// drain возвращает тексты, отправленные с прошлого вызова.
func (f *fakeSender) drain() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.texts
	f.texts = nil
	return out
}

type fakeAuth struct {
	users map[string]string
	err   error
}

func (f *fakeAuth) Login(ctx context.Context, in *dto.Login) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if err := validator.Login(in); err != nil {
		return false, err
	}
	pw, ok := f.users[in.Username]
	return ok && pw == in.Password, nil
}

type fakeClients struct {
	rows   []dto.Client
	actors []string
	err    error
}

func (f *fakeClients) Add(ctx context.Context, in *dto.Client) (uint, error) {
	if err := validator.Client(in); err != nil {
		return 0, err
	}
	f.actors = append(f.actors, domain.ActorFrom(ctx))
	c := *in
	c.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, c)
	return c.ID, nil
}

func (f *fakeClients) GetAll(ctx context.Context) ([]dto.Client, error) {
	return f.rows, f.err
}

func (f *fakeClients) Search(ctx context.Context, term string) ([]dto.Client, error) {
	out := []dto.Client{}
	for _, c := range f.rows {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClients) GetByID(ctx context.Context, id uint) (*dto.Client, error) {
	for _, c := range f.rows {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) Update(ctx context.Context, id uint, in *dto.Client) error {
	if err := validator.Client(in); err != nil {
		return err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Name, f.rows[i].Phone = in.Name, in.Phone
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeClients) Delete(ctx context.Context, id uint) error {
	return domain.ErrConflict
}

type fakeDogs struct {
	byClient map[uint][]dto.Dog
}

func (f *fakeDogs) Add(ctx context.Context, in *dto.Dog) (uint, error) { return 1, validator.Dog(in) }
func (f *fakeDogs) GetAll(ctx context.Context) ([]dto.Dog, error) { return nil, nil }
func (f *fakeDogs) Search(ctx context.Context, term string) ([]dto.Dog, error) {
	return nil, nil
}
func (f *fakeDogs) GetByClient(ctx context.Context, clientID uint) ([]dto.Dog, error) {
	return f.byClient[clientID], nil
}
func (f *fakeDogs) GetByID(ctx context.Context, id uint) (*dto.Dog, error) { return nil, nil }
func (f *fakeDogs) Update(ctx context.Context, id uint, in *dto.Dog) error { return validator.Dog(in) }
func (f *fakeDogs) Delete(ctx context.Context, id uint) error { return nil }

type fakeWalks struct {
	added []dto.Walk
}

func (f *fakeWalks) Add(ctx context.Context, in *dto.Walk) (uint, error) {
	if err := validator.Walk(in); err != nil {
		return 0, err
	}
	f.added = append(f.added, *in)
	return uint(len(f.added)), nil
}
func (f *fakeWalks) GetAll(ctx context.Context) ([]dto.Walk, error) { return nil, nil }
func (f *fakeWalks) Search(ctx context.Context, term string) ([]dto.Walk, error) {
	return nil, nil
}
func (f *fakeWalks) GetByDog(ctx context.Context, dogID uint) ([]dto.Walk, error) { return nil, nil }
func (f *fakeWalks) GetByID(ctx context.Context, id uint) (*dto.Walk, error) { return nil, nil }
func (f *fakeWalks) Update(ctx context.Context, id uint, in *dto.Walk) error {
	return validator.Walk(in)
}
func (f *fakeWalks) Delete(ctx context.Context, id uint) error { return nil }
