package term

// State identifies where the takeover lifecycle currently is.
type State int

const (
	// StateDashboard means the dashboard owns the terminal and renders normally.
	StateDashboard State = iota
	// StateSuspending means streams and timers are being stopped and the
	// terminal is being handed over.
	StateSuspending
	// StateForegroundActive means an interactive child process owns the
	// terminal directly.
	StateForegroundActive
	// StateRestoring means the child has exited and the dashboard is being
	// reconstructed.
	StateRestoring
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDashboard:
		return "Dashboard"
	case StateSuspending:
		return "Suspending"
	case StateForegroundActive:
		return "ForegroundActive"
	case StateRestoring:
		return "Restoring"
	default:
		return "Unknown"
	}
}
