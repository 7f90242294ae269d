package tui

import "time"

// DetailTab identifies the container detail pane content.
type DetailTab int

const (
	DetailLogs DetailTab = iota
	DetailMetrics
	DetailEnv
	DetailInspect
	DetailTop
)

var detailTabs = []DetailTab{DetailLogs, DetailMetrics, DetailEnv, DetailInspect, DetailTop}

// String returns the tab label.
func (t DetailTab) String() string {
	switch t {
	case DetailLogs:
		return "Logs"
	case DetailMetrics:
		return "Metrics"
	case DetailEnv:
		return "Env"
	case DetailInspect:
		return "Inspect"
	case DetailTop:
		return "Top"
	default:
		return "Unknown"
	}
}

// BatchReport summarizes one sequential batch dispatch. Failures are counted
// and logged per item; there is no rollback.
type BatchReport struct {
	Action    string
	Succeeded int
	Failed    int
	// Warnings carries non-fatal notices, e.g. a stopped container whose
	// restart policy will bring it back.
	Warnings []string
	// FirstErr is surfaced in the toast when Failed > 0.
	FirstErr error
}

// toastDuration is how long a transient status notification stays visible.
const toastDuration = 4 * time.Second
