package viewstate

import (
	"github.com/cmlabs-hris/smart-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type MutationKind string

const (
	MutationCreate     MutationKind = "create"
	MutationUpdate     MutationKind = "update"
	MutationDelete     MutationKind = "delete"
	MutationAction     MutationKind = "action"
	MutationBulkAction MutationKind = "bulk_action"
)

// Need names the capability a mutation requires.
type Need int

const (
	NeedCreate Need = iota + 1
	NeedUpdate
	NeedDelete
	NeedApprove
)

func (n Need) grantedBy(c user.Capabilities) bool {
	switch n {
	case NeedCreate:
		return c.CanCreate
	case NeedUpdate:
		return c.CanUpdate
	case NeedDelete:
		return c.CanDelete
	case NeedApprove:
		return c.CanApprove
	}
	return false
}

// Outcome is the terminal result of one mutation intent.
type Outcome struct {
	IntentID string
	Kind     MutationKind
	Verb     string
	TargetID *int64
	ResultID *int64 // id assigned or returned by the server
	OK       bool
	ErrKind  apierr.Kind
	Message  string
}

// Snapshot is an immutable copy of a controller's observable state.
type Snapshot[T any, P any] struct {
	Status          Status
	Items           []T
	ErrorMessage    string // non-empty exactly when Status is StatusError
	ErrorKind       apierr.Kind
	Notice          string // transient failure shown over last good items
	HasLoaded       bool
	IsSubmitting    bool
	SubmitError     string
	View            []T
	Page            PageInfo
	Filter          string
	Tab             int // index of Filter in the configured filters, -1 when unknown
	Search          string
	Params          P // params of the most recent Load request
	LastFetchParams P // params of the last successful Load
	Capabilities    user.Capabilities
	Outcome         *Outcome // oldest outcome not yet consumed
}
