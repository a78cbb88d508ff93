package dashboard

// Stats is today's headline numbers for the dashboard.
type Stats struct {
	TotalEmployees   int64 `json:"totalEmployees"`
	PresentToday     int64 `json:"presentToday"`
	WFOToday         int64 `json:"wfoToday"`
	WFHToday         int64 `json:"wfhToday"`
	OnLeaveToday     int64 `json:"onLeaveToday"`
	AbsentToday      int64 `json:"absentToday"`
	PendingLeaves    int64 `json:"pendingLeaves"`
	UpcomingHolidays int64 `json:"upcomingHolidays"`
}

// Bar is one row of the attendance breakdown chart.
type Bar struct {
	Label   string  `json:"label"`
	Value   int64   `json:"value"`
	Percent float64 `json:"percent"`
}

// Percent returns part/total*100, or 0 when total is not positive.
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// PresentPercent is the share of employees at work today.
func (s Stats) PresentPercent() float64 {
	return Percent(s.PresentToday, s.TotalEmployees)
}

// Bars returns the breakdown rows; empty when there are no employees.
func (s Stats) Bars() []Bar {
	if s.TotalEmployees <= 0 {
		return []Bar{}
	}
	return []Bar{
		{Label: "Work From Office", Value: s.WFOToday, Percent: Percent(s.WFOToday, s.TotalEmployees)},
		{Label: "Work From Home", Value: s.WFHToday, Percent: Percent(s.WFHToday, s.TotalEmployees)},
		{Label: "On Leave", Value: s.OnLeaveToday, Percent: Percent(s.OnLeaveToday, s.TotalEmployees)},
		{Label: "Absent", Value: s.AbsentToday, Percent: Percent(s.AbsentToday, s.TotalEmployees)},
	}
}
