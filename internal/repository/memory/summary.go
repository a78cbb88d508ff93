package memory

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
)

type summaryRepositoryImpl struct {
	db *DB
}

func NewSummaryRepository(db *DB) summary.SummaryRepository {
	return &summaryRepositoryImpl{db: db}
}

func inPeriod(p summary.Period) func(summary.Monthly) bool {
	return func(m summary.Monthly) bool { return m.Month == p.Month && m.Year == p.Year }
}

// List implements summary.SummaryRepository.
func (r *summaryRepositoryImpl) List(ctx context.Context, p summary.Period) ([]summary.Monthly, error) {
	return r.db.summaries.all(inPeriod(p)), nil
}

// ListByEmployee implements summary.SummaryRepository.
func (r *summaryRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]summary.Monthly, error) {
	return r.db.summaries.all(func(m summary.Monthly) bool {
		return sameID(m.EmployeeID, &employeeID)
	}), nil
}

// Replace implements summary.SummaryRepository.
func (r *summaryRepositoryImpl) Replace(ctx context.Context, p summary.Period, rows []summary.Monthly) ([]summary.Monthly, error) {
	r.db.summaries.removeWhere(inPeriod(p))
	out := make([]summary.Monthly, 0, len(rows))
	for _, m := range rows {
		m.Month, m.Year = p.Month, p.Year
		out = append(out, r.db.summaries.insert(m))
	}
	return out, nil
}
