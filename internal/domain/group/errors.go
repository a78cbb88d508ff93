package group

import "errors"

var ErrGroupNotFound = errors.New("group not found")
