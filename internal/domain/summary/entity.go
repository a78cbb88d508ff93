package summary

import "github.com/cmlabs-hris/smart-attendance-go/internal/domain/dashboard"

// Monthly is one employee's aggregated attendance for a month, computed by
// the backend.
type Monthly struct {
	ID                   *int64   `json:"id"`
	EmployeeID           *int64   `json:"employeeId"`
	EmployeeName         string   `json:"employeeName,omitempty"`
	EmployeeCode         string   `json:"employeeCode,omitempty"`
	GroupName            string   `json:"groupName,omitempty"`
	Month                int      `json:"month"`
	Year                 int      `json:"year"`
	WFOCount             int      `json:"wfoCount"`
	WFHCount             int      `json:"wfhCount"`
	LeaveCount           int      `json:"leaveCount"`
	HolidayCount         int      `json:"holidayCount"`
	AbsentCount          int      `json:"absentCount"`
	TotalWorkingDays     int      `json:"totalWorkingDays"`
	AttendancePercentage *float64 `json:"attendancePercentage,omitempty"`
}

func (m Monthly) Key() *int64 { return m.ID }

// Rate returns the backend percentage when present, otherwise present days
// over working days.
func (m Monthly) Rate() float64 {
	if m.AttendancePercentage != nil {
		return *m.AttendancePercentage
	}
	return dashboard.Percent(int64(m.WFOCount+m.WFHCount), int64(m.TotalWorkingDays))
}
