// Package apierr classifies remote call failures into the categories the
// screens react to.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindConnectivity
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindServer
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindConnectivity:
		return "connectivity"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Sentinels usable with errors.Is against any *Error.
var (
	ErrConnectivity = errors.New("unable to reach server")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("request rejected")
	ErrServer       = errors.New("server error")
	ErrCanceled     = errors.New("request canceled")
)

const (
	MessageConnectivity = "Unable to connect to server. Please check your connection."
	MessageUnauthorized = "Session expired. Please sign in again."
	MessageForbidden    = "Access denied. You do not have permission."
	MessageNotFound     = "Requested resource not found."
	MessageServer       = "Server error. Please try again later."
	MessageRequest      = "Request failed."
	MessageUnknown      = "Something went wrong."
)

// Error is a classified remote failure. Message is safe to show to users.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrConnectivity:
		return e.Kind == KindConnectivity
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrServer:
		return e.Kind == KindServer
	case ErrCanceled:
		return e.Kind == KindCanceled
	}
	return false
}

// Transient reports whether the last good data should be kept on screen and
// the failure shown as a banner.
func (e *Error) Transient() bool {
	return e.Kind == KindConnectivity || e.Kind == KindServer
}

// FromStatus classifies an HTTP response. body may be nil.
func FromStatus(status int, body []byte) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status, Message: MessageUnauthorized}
	case status == http.StatusForbidden:
		return &Error{Kind: KindForbidden, Status: status, Message: MessageForbidden}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: MessageNotFound}
	case status >= 500:
		return &Error{Kind: KindServer, Status: status, Message: MessageServer}
	case status >= 400:
		msg := bodyMessage(body)
		if msg == "" {
			msg = MessageRequest
		}
		return &Error{Kind: KindValidation, Status: status, Message: msg}
	}
	return &Error{Kind: KindUnknown, Status: status, Message: MessageUnknown}
}

// Connectivity wraps a transport failure that produced no status code.
func Connectivity(err error) *Error {
	return &Error{Kind: KindConnectivity, Message: MessageConnectivity, Err: err}
}

// Malformed wraps a response that arrived with a status but whose body could
// not be decoded.
func Malformed(status int, err error) *Error {
	if status >= 500 {
		return &Error{Kind: KindServer, Status: status, Message: MessageServer, Err: err}
	}
	return &Error{Kind: KindUnknown, Status: status, Message: MessageUnknown, Err: err}
}

// Invalid wraps a request rejected before it was sent, such as a payload
// that fails validation. The error text becomes the message.
func Invalid(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
}

// From converts any error into an *Error. Context cancellation becomes
// KindCanceled; unclassified errors become KindUnknown.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Message: MessageUnknown, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Connectivity(err)
	}
	return &Error{Kind: KindUnknown, Message: MessageUnknown, Err: err}
}

// bodyMessage extracts "message", then "error" from a JSON error body. The
// envelope form {"error":{"message":...}} is understood as well.
func bodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return nested.Message
		}
	}
	return ""
}
