package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/geo"
	"github.com/jvmedeiros/gym-checkin-api/internal/repository"
	"gorm.io/gorm"
)

const (
	// MaxDistanceKm is how far from the gym a check-in is still accepted.
	MaxDistanceKm = 0.1
	// ValidationWindow is how long after creation a check-in may be validated.
	ValidationWindow = 20 * time.Minute
)

type CheckInService struct {
	checkInRepo repository.CheckInRepository
	gymRepo     repository.GymRepository
	now         func() time.Time
}

// NewCheckInService builds the check-in decision engine. now is the clock
// used for day bucketing and the validation window; pass nil for time.Now.
func NewCheckInService(checkInRepo repository.CheckInRepository, gymRepo repository.GymRepository, now func() time.Time) *CheckInService {
	if now == nil {
		now = time.Now
	}
	return &CheckInService{
		checkInRepo: checkInRepo,
		gymRepo:     gymRepo,
		now:         now,
	}
}

// CheckIn records a visit of userID at gymID, provided the user is within
// MaxDistanceKm of the gym and has not checked in yet on the current UTC day.
// Nothing is written on any failure path.
func (s *CheckInService) CheckIn(ctx context.Context, userID, gymID uuid.UUID, userLatitude, userLongitude float64) (*domain.CheckIn, error) {
	gym, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}

	distance := geo.Distance(userLatitude, userLongitude, gym.Latitude, gym.Longitude)
	if distance > MaxDistanceKm {
		return nil, domain.ErrGymTooFar
	}

	now := s.now()
	if _, err := s.checkInRepo.GetByUserIDOnDay(ctx, userID, now); err == nil {
		return nil, domain.ErrCheckInLimitReached
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	checkIn := &domain.CheckIn{
		ID:        uuid.New(),
		UserID:    userID,
		GymID:     gym.ID,
		Day:       domain.DayOf(now),
		CreatedAt: now,
	}
	if err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		// Two requests can both pass the lookup above; the unique index on
		// (user_id, day) decides the winner.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrCheckInLimitReached
		}
		return nil, err
	}

	return checkIn, nil
}

// Validate marks a check-in as confirmed by an administrator. Only allowed
// once, within ValidationWindow of the check-in's creation.
func (s *CheckInService) Validate(ctx context.Context, checkInID uuid.UUID) (*domain.CheckIn, error) {
	checkIn, err := s.checkInRepo.GetByID(ctx, checkInID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, err
	}

	if checkIn.ValidatedAt != nil {
		return nil, domain.ErrAlreadyValidated
	}

	now := s.now()
	if now.Sub(checkIn.CreatedAt) > ValidationWindow {
		return nil, domain.ErrLateValidation
	}

	checkIn.ValidatedAt = &now
	if err := s.checkInRepo.Save(ctx, checkIn); err != nil {
		return nil, err
	}

	return checkIn, nil
}

// History returns the user's check-ins, newest first, 20 per page.
func (s *CheckInService) History(ctx context.Context, userID uuid.UUID, page int) ([]*domain.CheckIn, error) {
	if page < 1 {
		page = 1
	}
	return s.checkInRepo.GetManyByUserID(ctx, userID, page)
}

// Metrics returns the user's total check-in count.
func (s *CheckInService) Metrics(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.checkInRepo.CountByUserID(ctx, userID)
}
