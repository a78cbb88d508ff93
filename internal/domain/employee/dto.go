package employee

import "github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"

// Query selects which employees the backend returns.
type Query struct {
	ActiveOnly bool
	GroupID    *int64
}

// SaveRequest is the body for both create and update.
type SaveRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	WhatsappName string `json:"whatsappName,omitempty"`
	EmployeeCode string `json:"employeeCode,omitempty"`
	GroupID      *int64 `json:"groupId,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

// SaveRequestFrom prefills an edit form from an existing employee.
func SaveRequestFrom(e Employee) SaveRequest {
	return SaveRequest{
		Name:         e.Name,
		Email:        e.Email,
		Phone:        e.Phone,
		WhatsappName: e.WhatsappName,
		EmployeeCode: e.EmployeeCode,
		GroupID:      e.GroupID,
		IsActive:     e.IsActive,
	}
}

func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("name", r.Name)
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	return errs.Err()
}
