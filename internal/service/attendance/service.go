package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	holiday.HolidayRepository
	leave.LeaveRequestRepository
	logger *slog.Logger
}

// ProcessChat implements attendance.AttendanceService.
//
// Every date found in the chat is processed, plus req.Date so that silent
// employees are marked absent on the requested day. Records entered by hand
// are kept unless they say ABSENT.
func (a *AttendanceServiceImpl) ProcessChat(ctx context.Context, req attendance.ProcessChatRequest) ([]attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	groupID := req.Group()

	days := parseChat(req.ChatText)
	if _, ok := days[req.Date]; !ok {
		days[req.Date] = chatDay{}
	}

	employees, err := a.EmployeeRepository.List(ctx, employee.Query{ActiveOnly: true, GroupID: groupID})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	approved, err := a.LeaveRequestRepository.List(ctx, leave.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	for _, date := range slices.Sorted(maps.Keys(days)) {
		if err := a.processDay(ctx, date, days[date], employees, approved); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Chat processed", "date", req.Date, "days", len(days), "employees", len(employees))

	records, err := a.AttendanceRepository.List(ctx, attendance.ForDate(req.Date))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	if groupID == nil {
		return records, nil
	}

	inGroup := make(map[int64]bool, len(employees))
	for _, e := range employees {
		inGroup[*e.ID] = true
	}
	return slices.DeleteFunc(records, func(r attendance.Record) bool {
		return r.EmployeeID == nil || !inGroup[*r.EmployeeID]
	}), nil
}

func (a *AttendanceServiceImpl) processDay(ctx context.Context, date string, day chatDay, employees []employee.Employee, leaves []leave.Request) error {
	isHoliday := true
	if _, err := a.HolidayRepository.GetByDate(ctx, date); err != nil {
		if !errors.Is(err, holiday.ErrHolidayNotFound) {
			return fmt.Errorf("failed to get holiday: %w", err)
		}
		isHoliday = false
	}

	existing, err := a.AttendanceRepository.List(ctx, attendance.ForDate(date))
	if err != nil {
		return fmt.Errorf("failed to list attendance: %w", err)
	}
	byEmployee := make(map[int64]attendance.Record, len(existing))
	for _, r := range existing {
		if r.EmployeeID != nil {
			byEmployee[*r.EmployeeID] = r
		}
	}

	matched := make(map[string]bool)
	for _, e := range employees {
		if prev, ok := byEmployee[*e.ID]; ok && prev.Source != attendance.SourceWhatsApp && prev.Status != attendance.StatusAbsent {
			continue
		}

		rec := attendance.Record{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			EmployeeCode: e.EmployeeCode,
			GroupName:    e.GroupName,
			Date:         date,
			Source:       attendance.SourceWhatsApp,
		}
		entry, found := day.match(e)
		if found {
			matched[entry.sender] = true
			rec.InTime = entry.in
			rec.OutTime = entry.out
		}

		switch {
		case isHoliday:
			rec.Status = attendance.StatusHoliday
		case onApprovedLeave(leaves, *e.ID, date):
			rec.Status = attendance.StatusLeave
		case found && entry.in != "" && entry.wfh:
			rec.Status = attendance.StatusWFH
		case found && entry.in != "":
			rec.Status = attendance.StatusWFO
		default:
			rec.Status = attendance.StatusAbsent
		}

		if _, err := a.AttendanceRepository.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("failed to save attendance: %w", err)
		}
	}

	for sender := range day {
		if !matched[sender] {
			a.logger.Warn("Chat sender matches no employee", "sender", sender, "date", date)
		}
	}
	return nil
}

func onApprovedLeave(leaves []leave.Request, employeeID int64, date string) bool {
	for _, l := range leaves {
		if l.Status == leave.StatusApproved && l.EmployeeID != nil && *l.EmployeeID == employeeID &&
			l.StartDate <= date && date <= l.EndDate {
			return true
		}
	}
	return false
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, id int64, req attendance.UpdateRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	rec, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if req.Status != nil {
		rec.Status = *req.Status
	}
	if req.InTime != nil {
		rec.InTime = *req.InTime
	}
	if req.OutTime != nil {
		rec.OutTime = *req.OutTime
	}
	if req.Remarks != nil {
		rec.Remarks = *req.Remarks
	}
	rec.Source = attendance.SourceManual

	updated, err := a.AttendanceRepository.Update(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRequestRepository,
	logger *slog.Logger,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		HolidayRepository:      holidayRepo,
		LeaveRequestRepository: leaveRepo,
		logger:                 logger.With(slog.String("service", "attendance")),
	}
}
