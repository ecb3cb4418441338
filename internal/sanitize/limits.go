package sanitize

// Limits bounds every list and free-text field the sanitizer will accept.
// Tests construct small values to exercise boundaries without touching
// process-wide state.
type Limits struct {
	MaxTextLength  int // default cap for top-level free-text fields
	MaxListItems   int // generic item logs (exercise, caffeine, ...)
	MaxTimeEntries int // repeated bedtime/wakeup time logs
	MaxSleepHours  int // boolean per-hour sleep list
	MaxSlots       int // outer activityLog / timeSlots lists
	MaxActivities  int // activities within a single slot
	MaxCycles      int // vicious-cycle list
	MaxCycleItems  int // emotions/thoughts/behaviors/consequences per cycle
}

// DefaultLimits returns the production caps.
func DefaultLimits() Limits {
	return Limits{
		MaxTextLength:  10000,
		MaxListItems:   50,
		MaxTimeEntries: 10,
		MaxSleepHours:  24,
		MaxSlots:       24,
		MaxActivities:  20,
		MaxCycles:      50,
		MaxCycleItems:  20,
	}
}
