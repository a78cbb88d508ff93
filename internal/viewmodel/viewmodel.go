// Package viewmodel configures the generic controller for each screen of the
// attendance client.
package viewmodel

import (
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/viewstate"
)

const (
	FilterActive   = "Active"
	FilterInactive = "Inactive"

	// DefaultPageSize is used by paged screens when Deps.PageSize is unset.
	DefaultPageSize = 12
	// PageWindow is how many page numbers a pager shows around the current one.
	PageWindow = 5
)

// Session is what screens read from the signed-in session.
type Session interface {
	viewstate.Session
	Capabilities(g user.Grant) user.Capabilities
}

// Deps are shared by every screen.
type Deps struct {
	Session  Session
	Logger   *slog.Logger
	AutoLoad bool
	PageSize int
	Now      func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d Deps) pageSize() int {
	if d.PageSize <= 0 {
		return DefaultPageSize
	}
	return d.PageSize
}

func (d Deps) capabilities(g user.Grant) user.Capabilities {
	if d.Session == nil {
		return user.ReadOnly
	}
	return d.Session.Capabilities(g)
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

// activeFilters are the All/Active/Inactive tabs of the directory screens.
func activeFilters[T any](active func(T) bool) []viewstate.Filter[T] {
	return []viewstate.Filter[T]{
		{Name: viewstate.FilterAll},
		{Name: FilterActive, Match: active},
		{Name: FilterInactive, Match: func(item T) bool { return !active(item) }},
	}
}

func crudMessages(noun string) map[string]string {
	return map[string]string{
		string(viewstate.MutationCreate): noun + " created successfully",
		string(viewstate.MutationUpdate): noun + " updated successfully",
		string(viewstate.MutationDelete): noun + " deleted successfully",
	}
}
