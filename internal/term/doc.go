// Package term implements the fullscreen takeover lifecycle: handing the
// terminal to an interactive foreground child process and restoring the
// dashboard afterwards.
//
// The terminal is the single most contended resource in the program, so
// ownership is exclusive and explicit. Mode changes happen only inside the
// Manager's transitions, and every takeover is paired with a restoration,
// including the child-crash and failed-start paths. Raw-mode toggling is
// hidden behind the two-operation Owner interface so the state machine can be
// exercised with a fake terminal.
package term
