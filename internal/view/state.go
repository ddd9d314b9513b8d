// Package view maps fetcher state and backend entities to what a screen
// renders.
package view

// RenderState is what a screen shows.
type RenderState int

const (
	Loading RenderState = iota
	Empty
	Unauthenticated
	Populated
	// Degraded is a populated screen carrying data that failed a status
	// check, such as an unknown status or a status that moved backwards.
	Degraded
)

func (s RenderState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Empty:
		return "empty"
	case Unauthenticated:
		return "unauthenticated"
	case Populated:
		return "populated"
	case Degraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// ListState reconciles a collection screen. n is the number of items left
// after any local filter.
func ListState(authenticated, isLoading bool, n int) RenderState {
	switch {
	case !authenticated:
		return Unauthenticated
	case isLoading:
		return Loading
	case n == 0:
		return Empty
	default:
		return Populated
	}
}

// DetailState reconciles a single-entity screen.
func DetailState(authenticated, isLoading, present bool) RenderState {
	n := 0
	if present {
		n = 1
	}
	return ListState(authenticated, isLoading, n)
}

// Degrade downgrades a populated state when any anomaly is non-nil.
func Degrade(s RenderState, anomalies ...error) RenderState {
	if s != Populated {
		return s
	}
	for _, err := range anomalies {
		if err != nil {
			return Degraded
		}
	}
	return s
}
