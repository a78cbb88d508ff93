package group

import "github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"

type Query struct {
	ActiveOnly bool
}

type SaveRequest struct {
	Name                string `json:"name"`
	WhatsappGroupName   string `json:"whatsappGroupName,omitempty"`
	EmailSubjectPattern string `json:"emailSubjectPattern,omitempty"`
	GoogleSheetID       string `json:"googleSheetId,omitempty"`
	IsActive            *bool  `json:"isActive,omitempty"`
}

func (r *SaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs.Required("name", r.Name)
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}
