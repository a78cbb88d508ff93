package holiday

import (
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
)

type Holiday struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description,omitempty"`
	IsOptional  bool   `json:"isOptional,omitempty"`
}

func (h Holiday) Key() *int64 { return h.ID }

// On parses Date; the zero time is returned for malformed dates.
func (h Holiday) On() time.Time {
	t, _ := validator.IsValidDate(h.Date)
	return t
}
