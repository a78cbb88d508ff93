package holiday

import "github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"

// Query optionally restricts holidays to an inclusive date range.
type Query struct {
	Start string
	End   string
}

func (q Query) Ranged() bool {
	return q.Start != "" || q.End != ""
}

func (q Query) Validate() error {
	if !q.Ranged() {
		return nil
	}

	var errs validator.ValidationErrors
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
	return errs.Err()
}

type SaveRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	IsOptional  bool   `json:"isOptional,omitempty"`
}

func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("name", r.Name)
	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}

	return errs.Err()
}
