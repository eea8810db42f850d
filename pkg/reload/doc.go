// Package reload coalesces reload triggers into single reload cycles.
//
// The Scheduler is an explicit state machine with states idle and pending
// plus a single timer handle: Schedule calls within the quiet window reset
// the timer, and calls that arrive while a cycle is executing are absorbed
// into a fresh pending window instead of starting a second cycle. The
// Watcher feeds the scheduler from file-system change events, and the
// Refresher feeds it on a cron schedule for remote schema sources.
package reload
