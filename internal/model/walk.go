package model

import "time"

type Walk struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	DogID           uint      `json:"dog_id" gorm:"not null;index"`
	Dog             *Dog      `json:"dog,omitempty" gorm:"foreignKey:DogID;constraint:OnDelete:RESTRICT"`
	WalkDate        time.Time `json:"walk_date" gorm:"not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	// Выставляется после записи прогулки в журнал Google Sheets
	SheetIsSynced bool `json:"sheet_is_synced" gorm:"default:false"`
	Audit
}
