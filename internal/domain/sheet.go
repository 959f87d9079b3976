package domain

import (
	"context"

	"dog_walking/internal/model"
)

// SheetService записывает прогулки в таблицу журнала.
type SheetService interface {
	InsertWalk(ctx context.Context, row int, walk model.Walk) error
	FindFirstFreeRow(ctx context.Context) (int, error)
}
