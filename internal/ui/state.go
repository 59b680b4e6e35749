package ui

// State is the active screen. Exactly one is active at a time.
type State int

const (
	StateGreeting State = iota
	StateLoading
	StateResult
	StateError
	StateSavedList
)

func (s State) String() string {
	switch s {
	case StateGreeting:
		return "greeting"
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	case StateSavedList:
		return "saved_list"
	default:
		return "unknown"
	}
}

// focus is where keys go on the greeting screen.
type focus int

const (
	focusTopics focus = iota
	focusInput
)
