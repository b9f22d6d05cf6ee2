package model

import "errors"

// ErrPrecondition marks a caller contract violation. It is never returned for
// missing or malformed backend data, which is represented as nil instead.
var ErrPrecondition = errors.New("precondition violated")
