package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error)
	Search(ctx context.Context, query string, page int) ([]*domain.Gym, error)
	// FindNearby returns candidate gyms inside a bounding box around the point;
	// callers apply the exact distance cut.
	FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]*domain.Gym, error)
}

// CheckInRepository is the check-in ledger. Implementations must enforce
// uniqueness of (user_id, UTC day) at the storage level and surface a
// violation as gorm.ErrDuplicatedKey.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) error
	Save(ctx context.Context, checkIn *domain.CheckIn) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error)
	GetByUserIDOnDay(ctx context.Context, userID uuid.UUID, t time.Time) (*domain.CheckIn, error)
	GetManyByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.CheckIn, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Gym     GymRepository
	CheckIn CheckInRepository
}
