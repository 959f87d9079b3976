package postgres

import (
	"context"

	"dog_walking/internal/model"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalkRepository struct {
	DB    *gorm.DB
	clock clockwork.Clock
}

func NewWalkRepository(db *gorm.DB) *WalkRepository {
	return &WalkRepository{DB: db, clock: clockwork.NewRealClock()}
}

// withDogAndOwner подгружает собаку и ее клиента. Удаленные не подгружаются.
func withDogAndOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Dog", "is_active = ?", true).
		Preload("Dog.Client", "is_active = ?", true)
}

func (r *WalkRepository) Add(ctx context.Context, walk *model.Walk) error {
	if walk == nil {
		return missing("walk")
	}
	stampCreate(ctx, &walk.Audit, r.clock.Now().UTC())
	walk.SheetIsSynced = false
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(walk).Error)
}

// Update также сбрасывает флаг журнала, чтобы прогулка выгрузилась заново.
func (r *WalkRepository) Update(ctx context.Context, walk *model.Walk) error {
	if walk == nil {
		return missing("walk")
	}
	stampUpdate(ctx, &walk.Audit, r.clock.Now().UTC())
	walk.SheetIsSynced = false
	return updateActive(ctx, r.DB, &model.Walk{}, walk.ID, map[string]any{
		"dog_id":           walk.DogID,
		"walk_date":        walk.WalkDate,
		"duration_minutes": walk.DurationMinutes,
		"sheet_is_synced":  false,
	}, &walk.Audit)
}

func (r *WalkRepository) SoftDelete(ctx context.Context, walk *model.Walk) error {
	if walk == nil {
		return missing("walk")
	}
	return softDelete(ctx, r.DB, &model.Walk{}, walk.ID, &walk.Audit, r.clock.Now().UTC())
}

func (r *WalkRepository) GetByID(ctx context.Context, id uint) (*model.Walk, error) {
	var walk model.Walk
	err := r.DB.WithContext(ctx).Scopes(withDogAndOwner, active("walks")).
		Where("walks.id = ?", id).
		First(&walk).Error
	return firstOrNil(err, &walk)
}

func (r *WalkRepository) GetAll(ctx context.Context) ([]model.Walk, error) {
	var walks []model.Walk
	err := r.DB.WithContext(ctx).Scopes(withDogAndOwner, active("walks")).
		Order("walks.walk_date DESC").
		Find(&walks).Error
	return walks, err
}

// Search ищет по имени собаки; прогулки удаленных собак пропускаются.
func (r *WalkRepository) Search(ctx context.Context, term string) ([]model.Walk, error) {
	var walks []model.Walk
	err := r.DB.WithContext(ctx).Scopes(withDogAndOwner, active("walks")).
		Where(`EXISTS (
			SELECT 1 FROM dogs WHERE dogs.id = walks.dog_id AND dogs.is_active = ? AND dogs.name ILIKE ?)`,
			true, likePattern(term)).
		Order("walks.walk_date DESC").
		Find(&walks).Error
	return walks, err
}

func (r *WalkRepository) GetByDog(ctx context.Context, dogID uint) ([]model.Walk, error) {
	var walks []model.Walk
	err := r.DB.WithContext(ctx).Scopes(withDogAndOwner, active("walks")).
		Where("walks.dog_id = ?", dogID).
		Order("walks.walk_date DESC").
		Find(&walks).Error
	return walks, err
}

// GetUnsynced возвращает активные прогулки, которых еще нет в журнале.
func (r *WalkRepository) GetUnsynced(ctx context.Context) ([]model.Walk, error) {
	var walks []model.Walk
	err := r.DB.WithContext(ctx).Scopes(withDogAndOwner, active("walks")).
		Where("walks.sheet_is_synced = ?", false).
		Order("walks.id").
		Find(&walks).Error
	return walks, err
}

func (r *WalkRepository) MarkSynced(ctx context.Context, walk *model.Walk) (bool, error) {
	if walk == nil {
		return false, missing("walk")
	}
	res := r.DB.WithContext(ctx).Model(&model.Walk{}).
		Where("id = ? AND updated_at IS NOT DISTINCT FROM ?", walk.ID, walk.UpdatedAt).
		Update("sheet_is_synced", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
