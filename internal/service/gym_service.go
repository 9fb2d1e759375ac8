package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"github.com/jvmedeiros/gym-checkin-api/internal/geo"
	"github.com/jvmedeiros/gym-checkin-api/internal/repository"
	"gorm.io/datatypes"
)

// NearbyRadiusKm bounds the nearby-gyms search.
const NearbyRadiusKm = 10.0

type GymService struct {
	gymRepo repository.GymRepository
}

func NewGymService(gymRepo repository.GymRepository) *GymService {
	return &GymService{gymRepo: gymRepo}
}

type CreateGymInput struct {
	Title        string
	Description  *string
	Phone        *string
	Latitude     float64
	Longitude    float64
	OpeningHours datatypes.JSON
}

func (s *GymService) Create(ctx context.Context, input CreateGymInput) (*domain.Gym, error) {
	gym := &domain.Gym{
		ID:           uuid.New(),
		Title:        input.Title,
		Description:  input.Description,
		Phone:        input.Phone,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		OpeningHours: input.OpeningHours,
		CreatedAt:    time.Now(),
	}

	if err := s.gymRepo.Create(ctx, gym); err != nil {
		return nil, err
	}

	return gym, nil
}

func (s *GymService) Search(ctx context.Context, query string, page int) ([]*domain.Gym, error) {
	if page < 1 {
		page = 1
	}
	return s.gymRepo.Search(ctx, query, page)
}

// FindNearby returns gyms within NearbyRadiusKm of the point. The repository
// narrows to a bounding box; the exact cut is the haversine distance.
func (s *GymService) FindNearby(ctx context.Context, latitude, longitude float64) ([]*domain.Gym, error) {
	candidates, err := s.gymRepo.FindNearby(ctx, latitude, longitude, NearbyRadiusKm)
	if err != nil {
		return nil, err
	}

	gyms := make([]*domain.Gym, 0, len(candidates))
	for _, gym := range candidates {
		if geo.Distance(latitude, longitude, gym.Latitude, gym.Longitude) <= NearbyRadiusKm {
			gyms = append(gyms, gym)
		}
	}
	return gyms, nil
}
