package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"gorm.io/gorm"
)

const historyPageSize = 20

type checkInRepository struct {
	mu       sync.RWMutex
	checkIns map[uuid.UUID]domain.CheckIn
}

func NewCheckInRepository() *checkInRepository {
	return &checkInRepository{checkIns: make(map[uuid.UUID]domain.CheckIn)}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Same guarantee as the postgres unique index on (user_id, day): the
	// check under the write lock makes concurrent same-day creates lose.
	for _, c := range r.checkIns {
		if c.UserID == checkIn.UserID && c.Day.Equal(checkIn.Day) {
			return gorm.ErrDuplicatedKey
		}
	}

	if checkIn.ID == uuid.Nil {
		checkIn.ID = uuid.New()
	}
	r.checkIns[checkIn.ID] = *checkIn
	return nil
}

func (r *checkInRepository) Save(ctx context.Context, checkIn *domain.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.checkIns[checkIn.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.checkIns[checkIn.ID] = *checkIn
	return nil
}

func (r *checkInRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checkIn, ok := r.checkIns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &checkIn, nil
}

func (r *checkInRepository) GetByUserIDOnDay(ctx context.Context, userID uuid.UUID, t time.Time) (*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := domain.DayOf(t)
	for _, c := range r.checkIns {
		if c.UserID == userID && c.Day.Equal(day) {
			checkIn := c
			return &checkIn, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *checkInRepository) GetManyByUserID(ctx context.Context, userID uuid.UUID, page int) ([]*domain.CheckIn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var checkIns []*domain.CheckIn
	for _, c := range r.checkIns {
		checkIn := c
		if checkIn.UserID == userID {
			checkIns = append(checkIns, &checkIn)
		}
	}
	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].CreatedAt.After(checkIns[j].CreatedAt)
	})

	start := (page - 1) * historyPageSize
	if start >= len(checkIns) {
		return nil, nil
	}
	end := start + historyPageSize
	if end > len(checkIns) {
		end = len(checkIns)
	}
	return checkIns[start:end], nil
}

func (r *checkInRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, c := range r.checkIns {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}
