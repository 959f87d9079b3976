// Package dto - структуры обмена между телеграм-слоем и сервисами.
package dto

import "time"

type Client struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Dog struct {
	ID         uint   `json:"id"`
	ClientID   uint   `json:"client_id"`
	ClientName string `json:"client_name"`
	Name       string `json:"name"`
	Breed      string `json:"breed"`
	Age        int    `json:"age"`
}

type Walk struct {
	ID              uint      `json:"id"`
	DogID           uint      `json:"dog_id"`
	DogName         string    `json:"dog_name"`
	ClientID        uint      `json:"client_id"`
	ClientName      string    `json:"client_name"`
	WalkDate        time.Time `json:"walk_date"`
	DurationMinutes int       `json:"duration_minutes"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
