package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/group"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/summary"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

const (
	pathAttendance = "/api/attendance"
	pathEmployees  = "/api/employees"
	pathGroups     = "/api/groups"
	pathHolidays   = "/api/holidays"
	pathLeaves     = "/api/leaves"
	pathSummary    = "/api/summary"
	pathDashboard  = "/api/dashboard/stats"
)

var (
	_ viewstate.Gateway[attendance.Record, attendance.Query] = (*Resource[attendance.Record, attendance.Query])(nil)
	_ viewstate.Gateway[employee.Employee, employee.Query]   = (*Resource[employee.Employee, employee.Query])(nil)
	_ viewstate.Gateway[group.Group, group.Query]            = (*Resource[group.Group, group.Query])(nil)
	_ viewstate.Gateway[holiday.Holiday, holiday.Query]      = (*Resource[holiday.Holiday, holiday.Query])(nil)
	_ viewstate.Gateway[leave.Request, leave.Query]          = (*Resource[leave.Request, leave.Query])(nil)
	_ viewstate.Gateway[summary.Monthly, summary.Period]     = (*Resource[summary.Monthly, summary.Period])(nil)
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func Attendance(c *Client) *Resource[attendance.Record, attendance.Query] {
	return NewResource[attendance.Record](c, Routes[attendance.Query]{
		Base: pathAttendance,
		List: func(q attendance.Query) (string, url.Values, error) {
			if err := q.Validate(); err != nil {
				return "", nil, err
			}
			switch {
			case q.Date != "":
				return pathAttendance + "/date/" + q.Date, nil, nil
			case q.EmployeeID != nil && q.Start != "":
				return pathAttendance + "/employee/" + id(*q.EmployeeID) + "/range", rangeValues(q.Start, q.End), nil
			case q.EmployeeID != nil:
				return pathAttendance + "/employee/" + id(*q.EmployeeID), nil, nil
			default:
				return pathAttendance + "/range", rangeValues(q.Start, q.End), nil
			}
		},
		Bulk: map[string]Route{
			attendance.VerbProcessChat: {Method: http.MethodPost, Path: pathAttendance + "/process"},
		},
	})
}

func Employees(c *Client) *Resource[employee.Employee, employee.Query] {
	return NewResource[employee.Employee](c, Routes[employee.Query]{
		Base: pathEmployees,
		List: func(q employee.Query) (string, url.Values, error) {
			switch {
			case q.GroupID != nil:
				return pathEmployees + "/group/" + id(*q.GroupID), nil, nil
			case q.ActiveOnly:
				return pathEmployees + "/active", nil, nil
			}
			return pathEmployees, nil, nil
		},
	})
}

func Groups(c *Client) *Resource[group.Group, group.Query] {
	return NewResource[group.Group](c, Routes[group.Query]{
		Base: pathGroups,
		List: func(q group.Query) (string, url.Values, error) {
			if q.ActiveOnly {
				return pathGroups + "/active", nil, nil
			}
			return pathGroups, nil, nil
		},
	})
}

func Holidays(c *Client) *Resource[holiday.Holiday, holiday.Query] {
	return NewResource[holiday.Holiday](c, Routes[holiday.Query]{
		Base: pathHolidays,
		List: func(q holiday.Query) (string, url.Values, error) {
			if err := q.Validate(); err != nil {
				return "", nil, err
			}
			if q.Ranged() {
				return pathHolidays + "/range", rangeValues(q.Start, q.End), nil
			}
			return pathHolidays, nil, nil
		},
	})
}

func Leaves(c *Client) *Resource[leave.Request, leave.Query] {
	return NewResource[leave.Request](c, Routes[leave.Query]{
		Base: pathLeaves,
		List: func(q leave.Query) (string, url.Values, error) {
			switch {
			case q.EmployeeID != nil:
				return pathLeaves + "/employee/" + id(*q.EmployeeID), nil, nil
			case q.PendingOnly:
				return pathLeaves + "/pending", nil, nil
			}
			return pathLeaves, nil, nil
		},
		Actions: map[string]Route{
			leave.VerbApprove: {Method: http.MethodPut, Path: pathLeaves + "/{id}/approve"},
			leave.VerbReject:  {Method: http.MethodPut, Path: pathLeaves + "/{id}/reject"},
		},
	})
}

func Summaries(c *Client) *Resource[summary.Monthly, summary.Period] {
	return NewResource[summary.Monthly](c, Routes[summary.Period]{
		Base: pathSummary,
		List: func(p summary.Period) (string, url.Values, error) {
			if err := p.Validate(); err != nil {
				return "", nil, err
			}
			return pathSummary + "/monthly", p.Values(), nil
		},
		Bulk: map[string]Route{
			summary.VerbGenerate: {
				Method: http.MethodPost,
				Path:   pathSummary + "/generate",
				Query:  periodValues,
			},
		},
	})
}

// DashboardStats fetches today's headline numbers.
func (c *Client) DashboardStats(ctx context.Context) (dashboard.Stats, error) {
	var stats dashboard.Stats
	err := c.Do(ctx, http.MethodGet, pathDashboard, nil, nil, &stats)
	return stats, err
}

func rangeValues(start, end string) url.Values {
	return url.Values{"start": {start}, "end": {end}}
}

func periodValues(payload any) url.Values {
	switch p := payload.(type) {
	case summary.Period:
		return p.Values()
	case *summary.Period:
		return p.Values()
	}
	return nil
}
