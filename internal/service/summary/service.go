package summary

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
)

type SummaryServiceImpl struct {
	summary.SummaryRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	logger *slog.Logger
}

func NewSummaryService(
	summaryRepo summary.SummaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) summary.SummaryService {
	return &SummaryServiceImpl{
		SummaryRepository:    summaryRepo,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		logger:               logger.With(slog.String("service", "summary")),
	}
}

// Generate implements summary.SummaryService.
//
// Working days are the days an employee was expected at work: WFO, WFH or
// ABSENT. Leave and holidays count separately.
func (s *SummaryServiceImpl) Generate(ctx context.Context, p summary.Period) ([]summary.Monthly, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	first := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	employees, err := s.EmployeeRepository.List(ctx, employee.Query{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([]summary.Monthly, 0, len(employees))
	for _, e := range employees {
		records, err := s.AttendanceRepository.List(ctx, attendance.Query{
			Start:      first.Format(validator.DateLayout),
			End:        last.Format(validator.DateLayout),
			EmployeeID: e.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance: %w", err)
		}
		rows = append(rows, tally(e, records))
	}

	saved, err := s.SummaryRepository.Replace(ctx, p, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	s.logger.Info("Monthly summary generated", "period", p.String(), "employees", len(saved))
	return saved, nil
}

func tally(e employee.Employee, records []attendance.Record) summary.Monthly {
	m := summary.Monthly{
		EmployeeID:   e.ID,
		EmployeeName: e.Name,
		EmployeeCode: e.EmployeeCode,
		GroupName:    e.GroupName,
	}
	for _, r := range records {
		switch r.Status {
		case attendance.StatusWFO:
			m.WFOCount++
		case attendance.StatusWFH:
			m.WFHCount++
		case attendance.StatusLeave:
			m.LeaveCount++
		case attendance.StatusHoliday:
			m.HolidayCount++
		case attendance.StatusAbsent:
			m.AbsentCount++
		}
	}
	m.TotalWorkingDays = m.WFOCount + m.WFHCount + m.AbsentCount

	pct := 0.0
	if m.TotalWorkingDays > 0 {
		pct = math.Round(float64(m.WFOCount+m.WFHCount)*10000/float64(m.TotalWorkingDays)) / 100
	}
	m.AttendancePercentage = &pct
	return m
}
