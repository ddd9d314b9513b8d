package wizard

import "fmt"

// StepError is a rejected transition or a failed submission, reported on
// the step the user is looking at.
type StepError struct {
	Step    Step
	Field   string
	Message string
	Cause   error
}

func (e *StepError) Error() string {
	if e.Cause != nil && e.Field == "" {
		return fmt.Sprintf("%s: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func (e *StepError) Unwrap() error {
	return e.Cause
}
