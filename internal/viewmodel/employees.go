package viewmodel

import (
	"context"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

var employeeGrant = user.Grant{
	Create: user.PermissionEmployeeManage,
	Update: user.PermissionEmployeeManage,
	Delete: user.PermissionEmployeeManage,
}

// Employees is the paged employee directory.
type Employees struct {
	*viewstate.Controller[employee.Employee, employee.Query]
}

func NewEmployees(gw viewstate.Gateway[employee.Employee, employee.Query], deps Deps) *Employees {
	return &Employees{
		Controller: viewstate.NewController(viewstate.Config[employee.Employee, employee.Query]{
			Resource: "employees",
			Gateway:  gw,
			IDOf:     employee.Employee.Key,
			AutoLoad: deps.AutoLoad,
			Filters:  activeFilters(employee.Employee.Active),
			Search: func(e employee.Employee, needle string) bool {
				return viewstate.ContainsFold(needle, e.Name, e.Email, e.EmployeeCode)
			},
			Less: func(a, b employee.Employee) bool {
				return lessFold(a.Name, b.Name)
			},
			PageSize:     deps.pageSize(),
			Capabilities: deps.capabilities(employeeGrant),
			Messages:     crudMessages("Employee"),
			Session:      deps.Session,
			Logger:       deps.Logger,
		}),
	}
}

// ShowGroup reloads the directory for one group, or everyone when groupID is
// nil.
func (e *Employees) ShowGroup(ctx context.Context, groupID *int64) error {
	return e.Load(ctx, employee.Query{GroupID: groupID})
}

func (e *Employees) Add(ctx context.Context, req employee.SaveRequest) (viewstate.Outcome, error) {
	return e.Create(ctx, &req)
}

func (e *Employees) Edit(ctx context.Context, id int64, req employee.SaveRequest) (viewstate.Outcome, error) {
	return e.Update(ctx, id, &req)
}

func (e *Employees) Remove(ctx context.Context, id int64) (viewstate.Outcome, error) {
	return e.Delete(ctx, id)
}

// VisiblePages is the pager window around the current page.
func (e *Employees) VisiblePages() []int {
	page := e.Snapshot().Page
	return viewstate.VisiblePages(page.Page, page.TotalPages, PageWindow)
}
