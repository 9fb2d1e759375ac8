package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"gorm.io/gorm"
)

const searchPageSize = 20

type gymRepository struct {
	mu   sync.RWMutex
	gyms map[uuid.UUID]domain.Gym
}

func NewGymRepository() *gymRepository {
	return &gymRepository{gyms: make(map[uuid.UUID]domain.Gym)}
}

func (r *gymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gym.ID == uuid.Nil {
		gym.ID = uuid.New()
	}
	r.gyms[gym.ID] = *gym
	return nil
}

func (r *gymRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gym, ok := r.gyms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &gym, nil
}

func (r *gymRepository) Search(ctx context.Context, query string, page int) ([]*domain.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var matches []*domain.Gym
	for _, g := range r.gyms {
		gym := g
		if strings.Contains(strings.ToLower(gym.Title), q) ||
			(gym.Description != nil && strings.Contains(strings.ToLower(*gym.Description), q)) {
			matches = append(matches, &gym)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Title < matches[j].Title })

	start := (page - 1) * searchPageSize
	if start >= len(matches) {
		return nil, nil
	}
	end := start + searchPageSize
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func (r *gymRepository) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]*domain.Gym, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latDelta := radiusKm / 111.0
	lonDelta := radiusKm / 111.0

	var gyms []*domain.Gym
	for _, g := range r.gyms {
		gym := g
		if gym.Latitude >= lat-latDelta && gym.Latitude <= lat+latDelta &&
			gym.Longitude >= lon-lonDelta && gym.Longitude <= lon+lonDelta {
			gyms = append(gyms, &gym)
		}
	}
	return gyms, nil
}
