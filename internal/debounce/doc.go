// Package debounce provides trailing-edge debouncing.
//
// Gate is the event-loop form: it holds no timers and is driven by the
// caller scheduling a tick per Arm (Bubble Tea's tea.Tick). Debouncer is the
// goroutine form built on time.AfterFunc. Both keep a single pending value,
// re-armed on every update, and publish only the last one.
package debounce
