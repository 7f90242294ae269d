// Package tui renders the container dashboard and owns the single-threaded
// event loop everything else feeds into.
//
// All mutation happens inside Update: poll results, stream notifications,
// batch action reports and takeover completions arrive as typed messages, so
// no two renders ever interleave. The periodic refresh uses two ticks, a fast
// one for containers and the metrics pane and a slow one for images, volumes
// and networks; both carry a generation counter and are gated off while a
// fullscreen takeover owns the terminal.
package tui
