package memory

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
)

type holidayRepositoryImpl struct {
	db *DB
}

func NewHolidayRepository(db *DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// List implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) List(ctx context.Context, q holiday.Query) ([]holiday.Holiday, error) {
	return r.db.holidays.all(func(h holiday.Holiday) bool {
		return !q.Ranged() || (h.Date >= q.Start && h.Date <= q.End)
	}), nil
}

// GetByID implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id int64) (holiday.Holiday, error) {
	h, ok := r.db.holidays.get(id)
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) GetByDate(ctx context.Context, date string) (holiday.Holiday, error) {
	h, ok := r.db.holidays.find(func(h holiday.Holiday) bool { return h.Date == date })
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	if _, err := r.GetByDate(ctx, h.Date); err == nil {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	return r.db.holidays.insert(h), nil
}

// Update implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	if other, err := r.GetByDate(ctx, h.Date); err == nil && !sameID(other.ID, h.ID) {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	updated, ok := r.db.holidays.put(idOrZero(h.ID), h)
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return updated, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	if !r.db.holidays.remove(id) {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
