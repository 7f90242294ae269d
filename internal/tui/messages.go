package tui

import (
	"nanowhale/internal/docker"
	"nanowhale/pkg/logging"
)

// pingResultMsg reports the startup engine reachability probe.
type pingResultMsg struct {
	err error
}

// containersLoadedMsg carries one containers poll result.
type containersLoadedMsg struct {
	containers []docker.Container
	err        error
}

// taxonomyLoadedMsg carries one low-churn poll result (images, volumes,
// networks fetched together).
type taxonomyLoadedMsg struct {
	images   []docker.Image
	volumes  []docker.Volume
	networks []docker.Network
	err      error
}

// fastTickMsg fires the short-period refresh. Ticks from a superseded
// generation are dropped, which is how timers stay gated during a takeover.
type fastTickMsg struct {
	gen int
}

// slowTickMsg fires the long-period refresh.
type slowTickMsg struct {
	gen int
}

// streamUpdateMsg signals that a stream (stats or logs) produced new data.
// Updates are coalesced, one message may cover many lines.
type streamUpdateMsg struct{}

// batchDoneMsg reports a completed batch action dispatch.
type batchDoneMsg struct {
	kind   docker.EntityKind
	report BatchReport
}

// detailLoadedMsg reports a detail tab fetch for one container.
type detailLoadedMsg struct {
	name string
	tab  DetailTab
	err  error
}

// takeoverDoneMsg reports that a fullscreen session ended and the dashboard
// owns the terminal again.
type takeoverDoneMsg struct {
	label string
	err   error
}

// toastExpiredMsg clears a transient status notification. The id guards
// against an old expiry wiping a newer toast.
type toastExpiredMsg struct {
	id int
}

// logEntryMsg delivers one application log entry to the debug overlay.
type logEntryMsg struct {
	entry logging.Entry
}

// clipboardDoneMsg reports a copy-logs attempt.
type clipboardDoneMsg struct {
	err error
}
