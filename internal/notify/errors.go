package notify

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel marks a rejected notification level. Use errors.Is against
// it when the offending value does not matter.
var ErrInvalidLevel = errors.New("invalid notification level")

// InvalidLevelError reports a level outside the closed enumeration. It wraps
// ErrInvalidLevel so callers can match either the kind or the value.
type InvalidLevelError struct {
	Level string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid notification level %q (expected one of %s)", e.Level, levelNames())
}

func (e *InvalidLevelError) Unwrap() error {
	return ErrInvalidLevel
}
