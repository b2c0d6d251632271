package calculation

import "fmt"

// InvalidParameterError reports a scenario parameter outside its accepted
// domain. Validation runs before any simulation work, so a returned
// InvalidParameterError guarantees no partial trajectory was produced.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

func invalidParam(param, reason string) *InvalidParameterError {
	return &InvalidParameterError{Param: param, Reason: reason}
}
