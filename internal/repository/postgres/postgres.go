package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dog_walking/internal/domain"
	"dog_walking/internal/model"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Общие хелперы репозиториев: аудит, фильтр активных строк,
// мягкое удаление и перевод ошибок драйвера. Репозитории вызывают их явно.

func stampCreate(ctx context.Context, a *model.Audit, now time.Time) {
	a.CreatedAt = now
	a.CreatedBy = domain.ActorFrom(ctx)
	a.UpdatedAt = nil
	a.UpdatedBy = ""
	a.IsActive = true
}

func stampUpdate(ctx context.Context, a *model.Audit, now time.Time) {
	a.UpdatedAt = &now
	a.UpdatedBy = domain.ActorFrom(ctx)
}

// active оставляет в запросе только не удаленные строки.
func active(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_active = ?", true)
	}
}

// updateActive записывает values и колонки аудита в активную строку.
// Ноль затронутых строк - строки нет или она удалена.
func updateActive(ctx context.Context, db *gorm.DB, table any, id uint, values map[string]any, a *model.Audit) error {
	values["updated_at"] = a.UpdatedAt
	values["updated_by"] = a.UpdatedBy

	res := db.WithContext(ctx).Model(table).
		Where("id = ? AND is_active = ?", id, true).
		Updates(values)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
	}
	return nil
}

// softDelete выставляет is_active=false вместо удаления строки.
func softDelete(ctx context.Context, db *gorm.DB, table any, id uint, a *model.Audit, now time.Time) error {
	stampUpdate(ctx, a, now)
	if err := updateActive(ctx, db, table, id, map[string]any{"is_active": false}, a); err != nil {
		return err
	}
	a.IsActive = false
	return nil
}

func firstOrNil[T any](err error, row *T) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// likePattern строит шаблон подстроки для ILIKE, экранируя спецсимволы.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// translate переводит нарушения ограничений из lib/pq в доменные ошибки.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Name() {
	case "unique_violation":
		return fmt.Errorf("%w: %s", domain.ErrConflict, pqErr.Detail)
	case "foreign_key_violation":
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, pqErr.Detail)
	case "string_data_right_truncation":
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, pqErr.Message)
	}
	return err
}

func missing(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrMissingArgument, what)
}
