// Package debounce rate-limits repeated calls to a handler.
//
// A Debouncer runs its handler once per quiet window, on the trailing edge,
// with the argument of the last call made before the window elapsed. There
// is no leading call and no maximum wait: a steady stream of calls spaced
// closer than the window postpones the handler indefinitely.
//
// Timing comes from a Clock. RealClock schedules on time.AfterFunc, so the
// handler runs on a timer goroutine unless a Post function is supplied to
// hand it to the host's event loop. ManualClock fires timers synchronously
// from Advance and is the clock used by tests and single threaded hosts.
//
// Each logical channel owns its own Debouncer, so bursts on one channel do
// not delay another. A Group collects debouncers so a teardown can cancel
// every pending timer at once.
package debounce
