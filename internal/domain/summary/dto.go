package summary

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/validator"
)

const VerbGenerate = "generate"

// Period is the month/year a summary screen is scoped to.
type Period struct {
	Month int
	Year  int
}

func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

func (p Period) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(p.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 9999 {
		errs.Add("year", "year must be a four digit year from 2000")
	}

	return errs.Err()
}

func (p Period) Values() url.Values {
	return url.Values{
		"month": []string{strconv.Itoa(p.Month)},
		"year":  []string{strconv.Itoa(p.Year)},
	}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
