package postgres

import (
	"context"

	"dog_walking/internal/model"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DogRepository struct {
	DB    *gorm.DB
	clock clockwork.Clock
}

func NewDogRepository(db *gorm.DB) *DogRepository {
	return &DogRepository{DB: db, clock: clockwork.NewRealClock()}
}

// withOwner подгружает клиента-владельца. Удаленные клиенты
// не подгружаются.
func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Client", "is_active = ?", true)
}

func (r *DogRepository) Add(ctx context.Context, dog *model.Dog) error {
	if dog == nil {
		return missing("dog")
	}
	stampCreate(ctx, &dog.Audit, r.clock.Now().UTC())
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(dog).Error)
}

func (r *DogRepository) Update(ctx context.Context, dog *model.Dog) error {
	if dog == nil {
		return missing("dog")
	}
	stampUpdate(ctx, &dog.Audit, r.clock.Now().UTC())
	return updateActive(ctx, r.DB, &model.Dog{}, dog.ID, map[string]any{
		"client_id": dog.ClientID,
		"name":      dog.Name,
		"breed":     dog.Breed,
		"age":       dog.Age,
	}, &dog.Audit)
}

func (r *DogRepository) SoftDelete(ctx context.Context, dog *model.Dog) error {
	if dog == nil {
		return missing("dog")
	}
	return softDelete(ctx, r.DB, &model.Dog{}, dog.ID, &dog.Audit, r.clock.Now().UTC())
}

func (r *DogRepository) GetByID(ctx context.Context, id uint) (*model.Dog, error) {
	var dog model.Dog
	err := r.DB.WithContext(ctx).Scopes(withOwner, active("dogs")).
		Where("dogs.id = ?", id).
		First(&dog).Error
	return firstOrNil(err, &dog)
}

func (r *DogRepository) GetAll(ctx context.Context) ([]model.Dog, error) {
	var dogs []model.Dog
	err := r.DB.WithContext(ctx).Scopes(withOwner, active("dogs")).
		Order("dogs.name").
		Find(&dogs).Error
	return dogs, err
}

// Search ищет по имени собаки или имени владельца.
func (r *DogRepository) Search(ctx context.Context, term string) ([]model.Dog, error) {
	pattern := likePattern(term)
	var dogs []model.Dog
	err := r.DB.WithContext(ctx).Scopes(withOwner, active("dogs")).
		Where(`(dogs.name ILIKE ? OR EXISTS (
			SELECT 1 FROM clients WHERE clients.id = dogs.client_id AND clients.name ILIKE ?))`,
			pattern, pattern).
		Order("dogs.name").
		Find(&dogs).Error
	return dogs, err
}

func (r *DogRepository) GetByClient(ctx context.Context, clientID uint) ([]model.Dog, error) {
	var dogs []model.Dog
	err := r.DB.WithContext(ctx).Scopes(withOwner, active("dogs")).
		Where("dogs.client_id = ?", clientID).
		Order("dogs.name").
		Find(&dogs).Error
	return dogs, err
}
