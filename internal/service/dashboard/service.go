package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	leave.LeaveRequestRepository
	holiday.HolidayRepository
	now func() time.Time
}

func NewDashboardService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	holidayRepo holiday.HolidayRepository,
	now func() time.Time,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		LeaveRequestRepository: leaveRepo,
		HolidayRepository:      holidayRepo,
		now:                    now,
	}
}

// Stats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) Stats(ctx context.Context) (dashboard.Stats, error) {
	now := s.now()
	today := now.Format(validator.DateLayout)
	endOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Format(validator.DateLayout)

	var stats dashboard.Stats

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Active headcount
	g.Go(func() error {
		employees, err := s.EmployeeRepository.List(gCtx, employee.Query{ActiveOnly: true})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		stats.TotalEmployees = int64(len(employees))
		return nil
	})

	// 2. Today's attendance by status
	g.Go(func() error {
		records, err := s.AttendanceRepository.List(gCtx, attendance.ForDate(today))
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		for _, r := range records {
			switch r.Status {
			case attendance.StatusWFO:
				stats.WFOToday++
			case attendance.StatusWFH:
				stats.WFHToday++
			case attendance.StatusLeave:
				stats.OnLeaveToday++
			case attendance.StatusAbsent:
				stats.AbsentToday++
			}
		}
		stats.PresentToday = stats.WFOToday + stats.WFHToday
		return nil
	})

	// 3. Leave requests awaiting review
	g.Go(func() error {
		pending, err := s.LeaveRequestRepository.List(gCtx, leave.Query{PendingOnly: true})
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		stats.PendingLeaves = int64(len(pending))
		return nil
	})

	// 4. Holidays left this month
	g.Go(func() error {
		holidays, err := s.HolidayRepository.List(gCtx, holiday.Query{Start: today, End: endOfMonth})
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		stats.UpcomingHolidays = int64(len(holidays))
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.Stats{}, err
	}
	return stats, nil
}
