package model

import "time"

// Audit - колонки аудита и мягкого удаления, общие для всех таблиц.
// Встраивается в модель; заполняется явно хелперами репозитория.
type Audit struct {
	CreatedAt time.Time  `json:"created_at" gorm:"not null;autoCreateTime:false"`
	CreatedBy string     `json:"created_by" gorm:"type:varchar(100)"`
	UpdatedAt *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
	UpdatedBy string     `json:"updated_by" gorm:"type:varchar(100)"`
	IsActive  bool       `json:"is_active" gorm:"not null;default:true;index"`
}

// AuditInfo дает хелперам доступ к встроенному блоку.
func (a *Audit) AuditInfo() *Audit {
	return a
}

// Audited реализуют все модели со встроенным Audit.
type Audited interface {
	AuditInfo() *Audit
}
