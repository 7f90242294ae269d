// Package stream owns the dashboard's two long-lived engine subprocesses:
// the continuous stats stream and the per-container log follower.
//
// Both channels share the same lifecycle shape: at most one live process per
// channel, starting a new one always tears the old one down first, and parse
// errors never propagate. Output is line-oriented; a partial trailing line is
// held until the next chunk completes it. All retained data is bounded: each
// metric history keeps a fixed number of samples and the log buffer keeps a
// fixed number of bytes, oldest first out.
//
// A crashed stats process is respawned after a fixed backoff with at most one
// restart attempt in flight; stopping a channel (shutdown or fullscreen
// takeover) suppresses the restart.
package stream
