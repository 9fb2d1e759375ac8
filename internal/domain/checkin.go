package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckIn struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_check_ins_user_day"`
	GymID  uuid.UUID `json:"gymId" gorm:"type:uuid;not null"`
	// Day is CreatedAt truncated to the UTC calendar day. The composite unique
	// index on (user_id, day) is what makes concurrent same-day check-ins safe.
	Day         time.Time  `json:"-" gorm:"not null;uniqueIndex:idx_check_ins_user_day"`
	CreatedAt   time.Time  `json:"createdAt"`
	ValidatedAt *time.Time `json:"validatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Gym  *Gym  `json:"gym,omitempty" gorm:"foreignKey:GymID"`
}

// DayOf buckets a timestamp into its UTC calendar day.
func DayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
