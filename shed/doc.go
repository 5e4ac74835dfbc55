// Package shed provides the log store shared by every logger in a process.
//
// A Shed keeps a bounded FIFO cache of terminated logs, fans each terminated
// log out to the listeners subscribed to its level, owns the registry that
// makes labels with the same name share state, and carries configuration
// overrides that win over every logger's own configuration.
//
// One Shed may be installed process-wide with Create and uninstalled with
// Remove; loggers pick it up through Current unless they were built with a
// specific Shed. A nil or closed Shed is valid everywhere and does nothing.
//
// Listeners run synchronously on the terminating goroutine by default. With
// Config.AsyncDispatch a single background goroutine delivers them in order
// through a bounded queue, applying a per-level OverflowPolicy when the
// queue is full: DropNewest (default), DropOldest, or Block with a timeout
// (default for the alert and error levels).
//
// A listener that panics never affects the log that triggered it or the
// other listeners; the failure is reported through core.Warn and counted in
// Stats, which NewCollector exports to Prometheus.
package shed
