package attendance

type Status string

const (
	StatusWFO     Status = "WFO"
	StatusWFH     Status = "WFH"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
	StatusAbsent  Status = "ABSENT"
)

const (
	SourceWhatsApp = "WHATSAPP"
	SourceEmail    = "EMAIL"
	SourceManual   = "MANUAL"
)

// Statuses lists every status the backend may assign, in display order.
var Statuses = []Status{StatusWFO, StatusWFH, StatusLeave, StatusHoliday, StatusAbsent}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsPresent reports whether the status counts as worked (office or home).
func (s Status) IsPresent() bool {
	return s == StatusWFO || s == StatusWFH
}

// Record is one employee's attendance for one day.
type Record struct {
	ID           *int64 `json:"id"`
	EmployeeID   *int64 `json:"employeeId"`
	EmployeeName string `json:"employeeName,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty"`
	Date         string `json:"date,omitempty"` // YYYY-MM-DD
	InTime       string `json:"inTime,omitempty"`
	OutTime      string `json:"outTime,omitempty"`
	Status       Status `json:"status,omitempty"`
	Source       string `json:"source,omitempty"` // WHATSAPP, EMAIL, MANUAL
	Remarks      string `json:"remarks,omitempty"`
	GroupName    string `json:"groupName,omitempty"`
}

func (r Record) Key() *int64 { return r.ID }
