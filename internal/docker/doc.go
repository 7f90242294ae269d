// Package docker is the command gateway to the container engine.
//
// Every interaction with the engine goes through a CLI subprocess: one-shot
// listing and action commands run with a bounded timeout through Runner.Run,
// while long-lived streams (stats, logs) and interactive sessions obtain an
// unstarted *exec.Cmd from Runner.Command and manage its lifecycle themselves.
//
// The engine's output formats are a fixed contract: listings use
// pipe-delimited templates, inspect returns JSON. The package never surfaces
// transient failures to the user directly; callers keep previously cached
// data and rely on periodic polling as the retry mechanism.
package docker
