package service_test

import (
	"context"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"
	gDto "hotel/shared/dto"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// memoryStore is a Reservation store whose InsertIfAvailable holds one lock across the count
// and the insert, the same guarantee the advisory lock gives in postgres.
type memoryStore struct {
	mu           sync.Mutex
	reservations []model.Reservation
}

var _ repository.Reservation = (*memoryStore)(nil)

func (m *memoryStore) overlapping(roomType string, from, to time.Time) int {
	count := 0

	for _, r := range m.reservations {
		if r.RoomType == roomType && r.IsActive() && r.Overlaps(from, to) {
			count++
		}
	}

	return count
}

func (m *memoryStore) Insert(_ context.Context, r model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reservations = append(m.reservations, r)

	return nil
}

func (m *memoryStore) InsertIfAvailable(_ context.Context, r model.Reservation, inventory int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.reservations {
		if existing.ConfirmationCode == r.ConfirmationCode {
			return repository.ErrDuplicateCode
		}
	}

	if m.overlapping(r.RoomType, r.CheckInDate, r.CheckOutDate) >= inventory {
		return repository.ErrCapacityExceeded
	}

	m.reservations = append(m.reservations, r)

	return nil
}

func (m *memoryStore) Get(context.Context, gDto.FilterGroup, ...string) (model.Reservation, error) {
	return model.Reservation{}, nil
}

func (m *memoryStore) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]model.Reservation(nil), m.reservations...), nil
}

func (m *memoryStore) FindOverlapping(_ context.Context, roomType string, from, to time.Time) ([]model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var res []model.Reservation

	for _, r := range m.reservations {
		if (roomType == "" || r.RoomType == roomType) && r.IsActive() && r.Overlaps(from, to) {
			res = append(res, r)
		}
	}

	return res, nil
}

func (m *memoryStore) Exist(context.Context, gDto.FilterGroup) (bool, error) {
	return false, nil
}

func (m *memoryStore) Count(context.Context, gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.reservations), nil
}

func (m *memoryStore) SumTotal(context.Context, gDto.FilterGroup) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (m *memoryStore) Update(context.Context, map[string]any, gDto.FilterGroup) error {
	return nil
}

func (m *memoryStore) UpdateAffected(context.Context, map[string]any, gDto.FilterGroup) (int64, error) {
	return 0, nil
}

func (m *memoryStore) active(roomType string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0

	for _, r := range m.reservations {
		if r.RoomType == roomType && r.IsActive() {
			count++
		}
	}

	return count
}
