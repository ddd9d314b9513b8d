package types

import "fmt"

// StatusRegressionError reports an observed status that moved backwards
// along the lifecycle, or jumped between terminal states.
type StatusRegressionError struct {
	Entity string
	ID     ID
	From   string
	To     string
}

func (e *StatusRegressionError) Error() string {
	return fmt.Sprintf("%s %s status regressed from %s to %s", e.Entity, e.ID, e.From, e.To)
}

// UnknownStatusError reports a status value outside the canonical set.
type UnknownStatusError struct {
	Entity string
	ID     ID
	Value  string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("%s %s has unknown status %q", e.Entity, e.ID, e.Value)
}
