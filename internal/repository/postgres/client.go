package postgres

import (
	"context"

	"dog_walking/internal/model"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClientRepository struct {
	DB    *gorm.DB
	clock clockwork.Clock
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{DB: db, clock: clockwork.NewRealClock()}
}

func (r *ClientRepository) Add(ctx context.Context, client *model.Client) error {
	if client == nil {
		return missing("client")
	}
	stampCreate(ctx, &client.Audit, r.clock.Now().UTC())
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(client).Error)
}

func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	if client == nil {
		return missing("client")
	}
	stampUpdate(ctx, &client.Audit, r.clock.Now().UTC())
	return updateActive(ctx, r.DB, &model.Client{}, client.ID, map[string]any{
		"name":  client.Name,
		"phone": client.Phone,
	}, &client.Audit)
}

func (r *ClientRepository) SoftDelete(ctx context.Context, client *model.Client) error {
	if client == nil {
		return missing("client")
	}
	return softDelete(ctx, r.DB, &model.Client{}, client.ID, &client.Audit, r.clock.Now().UTC())
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	err := r.DB.WithContext(ctx).Scopes(active("clients")).
		Where("clients.id = ?", id).
		First(&client).Error
	return firstOrNil(err, &client)
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	err := r.DB.WithContext(ctx).Scopes(active("clients")).
		Order("clients.name").
		Find(&clients).Error
	return clients, err
}

func (r *ClientRepository) Search(ctx context.Context, term string) ([]model.Client, error) {
	pattern := likePattern(term)
	var clients []model.Client
	err := r.DB.WithContext(ctx).Scopes(active("clients")).
		Where(`(clients.name ILIKE ? OR EXISTS (
			SELECT 1 FROM dogs WHERE dogs.client_id = clients.id AND dogs.is_active = ? AND dogs.name ILIKE ?))`,
			pattern, true, pattern).
		Order("clients.name").
		Find(&clients).Error
	return clients, err
}
