package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Gym struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title        string         `json:"title" gorm:"not null"`
	Description  *string        `json:"description"`
	Phone        *string        `json:"phone"`
	Latitude     float64        `json:"latitude" gorm:"not null"`
	Longitude    float64        `json:"longitude" gorm:"not null"`
	OpeningHours datatypes.JSON `json:"openingHours,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
