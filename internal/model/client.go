package model

type Client struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"type:varchar(100);not null"`
	Phone string `json:"phone" gorm:"type:varchar(20);not null"`
	Audit
}
