package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
)

// Credentials accepted by the seeded stub in place of a Google ID token.
const (
	SeedAdminCredential = "dev-admin"
	SeedUserCredential  = "dev-user"
)

// Seed fills db with a small development dataset relative to now.
func Seed(ctx context.Context, db *DB, now time.Time) error {
	users := NewUserRepository(db)
	groups := NewGroupRepository(db)
	employees := NewEmployeeRepository(db)
	holidays := NewHolidayRepository(db)
	records := NewAttendanceRepository(db)
	leaves := NewLeaveRequestRepository(db)

	if _, err := users.Create(ctx, user.User{Email: "admin@cmlabs.co", Name: "Dev Admin", Role: user.RoleAdmin}, SeedAdminCredential); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if _, err := users.Create(ctx, user.User{Email: "staff@cmlabs.co", Name: "Dev Staff", Role: user.RoleUser}, SeedUserCredential); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	engineering, err := groups.Create(ctx, group.Group{Name: "Engineering", WhatsappGroupName: "CMLabs Engineering"})
	if err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}
	operations, err := groups.Create(ctx, group.Group{Name: "Operations", EmailSubjectPattern: "[OPS] Attendance"})
	if err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	inactive := false
	staff := []employee.Employee{
		{Name: "Jane Doe", Email: "jane@cmlabs.co", Phone: "+62 812-3456-7801", WhatsappName: "Jane", EmployeeCode: "ENG-001", GroupID: engineering.ID},
		{Name: "Budi Santoso", Email: "budi@cmlabs.co", Phone: "+62 812-3456-7802", EmployeeCode: "ENG-002", GroupID: engineering.ID},
		{Name: "Siti Rahma", Email: "siti@cmlabs.co", Phone: "+62 812-3456-7803", EmployeeCode: "OPS-001", GroupID: operations.ID},
		{Name: "Agus Pratama", Email: "agus@cmlabs.co", EmployeeCode: "OPS-002", GroupID: operations.ID, IsActive: &inactive},
	}
	created := make([]employee.Employee, 0, len(staff))
	for _, e := range staff {
		e, err := employees.Create(ctx, e)
		if err != nil {
			return fmt.Errorf("failed to seed employees: %w", err)
		}
		created = append(created, e)
	}

	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(time.DateOnly)
	}

	if _, err := holidays.Create(ctx, holiday.Holiday{Name: "Company Anniversary", Date: day(7), Description: "Office closed"}); err != nil {
		return fmt.Errorf("failed to seed holidays: %w", err)
	}
	if _, err := holidays.Create(ctx, holiday.Holiday{Name: "Team Retreat", Date: day(30), IsOptional: true}); err != nil {
		return fmt.Errorf("failed to seed holidays: %w", err)
	}

	yesterday := day(-1)
	statuses := []struct {
		status  attendance.Status
		in, out string
	}{
		{attendance.StatusWFO, "08:55", "17:30"},
		{attendance.StatusWFH, "09:10", "18:00"},
		{attendance.StatusAbsent, "", ""},
	}
	for i, s := range statuses {
		e := created[i]
		_, err := records.Upsert(ctx, attendance.Record{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			EmployeeCode: e.EmployeeCode,
			GroupName:    e.GroupName,
			Date:         yesterday,
			InTime:       s.in,
			OutTime:      s.out,
			Status:       s.status,
			Source:       attendance.SourceWhatsApp,
		})
		if err != nil {
			return fmt.Errorf("failed to seed attendance: %w", err)
		}
	}

	_, err = leaves.Create(ctx, leave.Request{
		EmployeeID:   created[1].ID,
		EmployeeName: created[1].Name,
		StartDate:    day(3),
		EndDate:      day(4),
		Reason:       "Family event",
		LeaveType:    "CASUAL",
		Status:       leave.StatusPending,
	})
	if err != nil {
		return fmt.Errorf("failed to seed leave requests: %w", err)
	}

	return nil
}
