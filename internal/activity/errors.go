package activity

import (
	"fmt"
	"strings"
)

// ValidationError reports a posted record that does not match the activity
// schema. Details lists the individual schema violations.
type ValidationError struct {
	msg     string
	Details []string
}

func (e ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.msg
	}
	return e.msg + ": " + strings.Join(e.Details, "; ")
}

// NewValidationError creates a new validation error.
func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}
