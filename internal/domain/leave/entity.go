package leave

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Types offered by the apply form. The backend stores free text.
var Types = []string{"CASUAL", "SICK", "EARNED"}

// Request is a leave application.
type Request struct {
	ID             *int64 `json:"id"`
	EmployeeID     *int64 `json:"employeeId"`
	EmployeeName   string `json:"employeeName,omitempty"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Reason         string `json:"reason"`
	LeaveType      string `json:"leaveType,omitempty"`
	Status         Status `json:"status,omitempty"`
	ApprovedBy     *int64 `json:"approvedBy,omitempty"`
	ApprovedByName string `json:"approvedByName,omitempty"`
	AdminRemarks   string `json:"adminRemarks,omitempty"`
}

func (r Request) Key() *int64 { return r.ID }

func (r Request) IsPending() bool {
	return r.Status == StatusPending || r.Status == ""
}
