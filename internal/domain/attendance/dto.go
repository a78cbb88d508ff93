package attendance

import (
	"strconv"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
)

// VerbProcessChat is the bulk action that turns a chat export into records.
const VerbProcessChat = "process"

// Query selects the backend collection the attendance screen shows.
// Exactly one of Date, Start/End or EmployeeID scopes the request; Start/End
// combined with EmployeeID narrows one employee to a range.
type Query struct {
	Date       string
	Start      string
	End        string
	EmployeeID *int64
}

// ForDate is the default screen query.
func ForDate(date string) Query {
	return Query{Date: date}
}

func (q Query) Validate() error {
	var errs validator.ValidationErrors

	hasRange := q.Start != "" || q.End != ""
	switch {
	case q.Date != "" && (hasRange || q.EmployeeID != nil):
		errs.Add("date", "date cannot be combined with a range or employee")
	case q.Date == "" && !hasRange && q.EmployeeID == nil:
		return ErrInvalidQuery
	}

	if q.Date != "" {
		if _, ok := validator.IsValidDate(q.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}
	if hasRange {
		start, okStart := validator.IsValidDate(q.Start)
		end, okEnd := validator.IsValidDate(q.End)
		if !okStart {
			errs.Add("start", "start must be YYYY-MM-DD")
		}
		if !okEnd {
			errs.Add("end", "end must be YYYY-MM-DD")
		}
		if okStart && okEnd && end.Before(start) {
			errs.Add("end", "end must not be before start")
		}
	}

	return errs.Err()
}

// ProcessChatRequest asks the backend to turn a pasted WhatsApp export into
// attendance records for Date.
type ProcessChatRequest struct {
	ChatText string `json:"chatText"`
	Date     string `json:"date"`
	GroupID  string `json:"groupId,omitempty"`
}

func NewProcessChatRequest(chatText, date string, groupID *int64) ProcessChatRequest {
	req := ProcessChatRequest{ChatText: chatText, Date: date}
	if groupID != nil {
		req.GroupID = strconv.FormatInt(*groupID, 10)
	}
	return req
}

func (r *ProcessChatRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("chatText", r.ChatText)
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if r.GroupID != "" {
		if _, err := strconv.ParseInt(r.GroupID, 10, 64); err != nil {
			errs.Add("groupId", "groupId must be numeric")
		}
	}

	return errs.Err()
}

// Group returns the parsed group filter, nil when absent or malformed.
func (r ProcessChatRequest) Group() *int64 {
	if r.GroupID == "" {
		return nil
	}
	id, err := strconv.ParseInt(r.GroupID, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// UpdateRequest corrects a single record. Nil fields are left unchanged.
type UpdateRequest struct {
	Status  *Status `json:"status,omitempty"`
	InTime  *string `json:"inTime,omitempty"`
	OutTime *string `json:"outTime,omitempty"`
	Remarks *string `json:"remarks,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !r.Status.Valid() {
		errs.Add("status", ErrInvalidStatus.Error())
	}
	if r.InTime != nil && *r.InTime != "" && !validator.IsValidClock(*r.InTime) {
		errs.Add("inTime", "inTime must be HH:MM")
	}
	if r.OutTime != nil && *r.OutTime != "" && !validator.IsValidClock(*r.OutTime) {
		errs.Add("outTime", "outTime must be HH:MM")
	}

	return errs.Err()
}
