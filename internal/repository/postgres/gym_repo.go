package postgres

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"gorm.io/gorm"
)

const searchPageSize = 20

type gymRepository struct {
	db *gorm.DB
}

func NewGymRepository(db *gorm.DB) *gymRepository {
	return &gymRepository{db: db}
}

func (r *gymRepository) Create(ctx context.Context, gym *domain.Gym) error {
	return r.db.WithContext(ctx).Create(gym).Error
}

func (r *gymRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error) {
	var gym domain.Gym
	err := r.db.WithContext(ctx).First(&gym, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *gymRepository) Search(ctx context.Context, query string, page int) ([]*domain.Gym, error) {
	var gyms []*domain.Gym
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("title ASC").
		Limit(searchPageSize).
		Offset((page - 1) * searchPageSize).
		Find(&gyms).Error
	if err != nil {
		return nil, err
	}
	return gyms, nil
}

func (r *gymRepository) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]*domain.Gym, error) {
	// One degree of latitude is ~111 km; longitude shrinks with cos(lat).
	latDelta := radiusKm / 111.0
	cosLat := math.Cos(lat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonDelta := radiusKm / (111.0 * cosLat)

	var gyms []*domain.Gym
	err := r.db.WithContext(ctx).
		Where("latitude BETWEEN ? AND ?", lat-latDelta, lat+latDelta).
		Where("longitude BETWEEN ? AND ?", lon-lonDelta, lon+lonDelta).
		Find(&gyms).Error
	if err != nil {
		return nil, err
	}
	return gyms, nil
}
