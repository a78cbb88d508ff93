package viewstate

import "errors"

var (
	ErrCapabilityDenied = errors.New("operation not permitted for this session")
	ErrClosed           = errors.New("controller closed")
	ErrSuperseded       = errors.New("load superseded by a newer request")
	ErrUnsupported      = errors.New("operation not supported by this resource")
)
