package domain

import (
	"context"

	"dog_walking/internal/model"
)

// Чтение возвращает только активные строки. GetByID возвращает nil, nil, если строки нет.
// Add, Update и SoftDelete заполняют аудит из ActorFrom(ctx).

type ClientRepo interface {
	Add(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	SoftDelete(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id uint) (*model.Client, error)
	GetAll(ctx context.Context) ([]model.Client, error)
	// Ищет по имени клиента или имени любой его активной собаки.
	Search(ctx context.Context, term string) ([]model.Client, error)
}

type DogRepo interface {
	Add(ctx context.Context, dog *model.Dog) error
	Update(ctx context.Context, dog *model.Dog) error
	SoftDelete(ctx context.Context, dog *model.Dog) error
	GetByID(ctx context.Context, id uint) (*model.Dog, error)
	GetAll(ctx context.Context) ([]model.Dog, error)
	Search(ctx context.Context, term string) ([]model.Dog, error)
	GetByClient(ctx context.Context, clientID uint) ([]model.Dog, error)
}

type WalkRepo interface {
	Add(ctx context.Context, walk *model.Walk) error
	Update(ctx context.Context, walk *model.Walk) error
	SoftDelete(ctx context.Context, walk *model.Walk) error
	GetByID(ctx context.Context, id uint) (*model.Walk, error)
	GetAll(ctx context.Context) ([]model.Walk, error)
	Search(ctx context.Context, term string) ([]model.Walk, error)
	GetByDog(ctx context.Context, dogID uint) ([]model.Walk, error)

	// Прогулки, еще не выгруженные в журнал
	GetUnsynced(ctx context.Context) ([]model.Walk, error)
	// MarkSynced отмечает прогулку выгруженной, если ее не меняли после чтения;
	// иначе ok=false и прогулка остается в очереди.
	MarkSynced(ctx context.Context, walk *model.Walk) (ok bool, err error)
}

type UserRepo interface {
	Add(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
