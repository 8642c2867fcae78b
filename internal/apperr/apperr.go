package apperr

import "errors"

// BusinessError is a caller-recoverable rule violation: the operation was
// invoked on a goal or day whose state does not permit it. It is never a
// system fault and is always safe to surface to the user.
type BusinessError struct {
	Title       string
	Description string
}

func (e *BusinessError) Error() string {
	if e.Description == "" {
		return e.Title
	}
	return e.Title + ": " + e.Description
}

// New creates a BusinessError with a short title and an optional
// longer description.
func New(title, description string) *BusinessError {
	return &BusinessError{Title: title, Description: description}
}

// AsBusiness unwraps err into a BusinessError, if it is one.
func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
