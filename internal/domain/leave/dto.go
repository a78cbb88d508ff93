package leave

import "github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"

const (
	VerbApprove = "approve"
	VerbReject  = "reject"
)

type Query struct {
	PendingOnly bool
	EmployeeID  *int64
}

type ApplyRequest struct {
	EmployeeID *int64 `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	LeaveType  string `json:"leaveType,omitempty"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == nil {
		errs.Add("employeeId", "employeeId is required")
	}

	// Dates
	start, okStart := validator.IsValidDate(r.StartDate)
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okStart {
		errs.Add("startDate", "startDate must be YYYY-MM-DD")
	}
	if !okEnd {
		errs.Add("endDate", "endDate must be YYYY-MM-DD")
	}
	if okStart && okEnd && end.Before(start) {
		errs.Add("endDate", "endDate must not be before startDate")
	}

	errs.Required("reason", r.Reason)

	if r.LeaveType != "" && !validator.IsInSlice(r.LeaveType, Types) {
		errs.Add("leaveType", "leaveType must be one of CASUAL, SICK, EARNED")
	}

	return errs.Err()
}

// ReviewRequest carries optional admin remarks for approve and reject.
type ReviewRequest struct {
	Remarks string `json:"remarks,omitempty"`
}
