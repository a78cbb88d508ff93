package memory

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, q attendance.Query) ([]attendance.Record, error) {
	return r.db.attendance.all(func(rec attendance.Record) bool {
		if q.Date != "" && rec.Date != q.Date {
			return false
		}
		if q.Start != "" && rec.Date < q.Start {
			return false
		}
		if q.End != "" && rec.Date > q.End {
			return false
		}
		return q.EmployeeID == nil || sameID(rec.EmployeeID, q.EmployeeID)
	}), nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	rec, ok := r.db.attendance.get(id)
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	existing, ok := r.db.attendance.find(func(other attendance.Record) bool {
		return other.Date == rec.Date && sameID(other.EmployeeID, rec.EmployeeID)
	})
	if !ok {
		return r.db.attendance.insert(rec), nil
	}
	updated, _ := r.db.attendance.put(*existing.ID, rec)
	return updated, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	updated, ok := r.db.attendance.put(idOrZero(rec.ID), rec)
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return updated, nil
}
