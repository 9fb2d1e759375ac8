package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"gorm.io/gorm"
)

const historyPageSize = 20

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) *checkInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	return r.db.WithContext(ctx).Create(checkIn).Error
}

func (r *checkInRepository) Save(ctx context.Context, checkIn *domain.CheckIn) error {
	return r.db.WithContext(ctx).Save(checkIn).Error
}

func (r *checkInRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	err := r.db.WithContext(ctx).First(&checkIn, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepository) GetByUserIDOnDay(ctx context.Context, userID uuid.UUID, t time.Time) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	err := r.db.WithContext(ctx).
		First(&checkIn, "user_id = ? AND day = ?", userID, domain.DayOf(t)).Error
	if err != nil {
		return nil, err
	}
	return &checkIn, nil
}

func (r *checkInRepository) GetManyByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.CheckIn, error) {
	var checkIns []*domain.CheckIn
	err := r.db.WithContext(ctx).
		Preload("Gym").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(historyPageSize).
		Offset((page - 1) * historyPageSize).
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (r *checkInRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CheckIn{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
