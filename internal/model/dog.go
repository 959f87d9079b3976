package model

type Dog struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	ClientID uint    `json:"client_id" gorm:"not null;index"`
	Client   *Client `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	Name     string  `json:"name" gorm:"type:varchar(100);not null"`
	Breed    string  `json:"breed" gorm:"type:varchar(100)"`
	Age      int     `json:"age" gorm:"not null"`
	Audit
}
