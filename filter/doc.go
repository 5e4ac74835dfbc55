// Package filter holds the pure predicates that decide whether a log prints
// and that select logs from a Shed cache or a bundle for replay.
//
// Allowed is evaluated once, when a log terminates, against the log's fully
// merged settings. The include/exclude semantics of the global filters are:
// a non-empty include list makes membership required, an exclude list
// rejects members, and a standout log bypasses include lists always and
// exclude lists (and hideAll) unless the Shed enforces strict exclusion.
package filter
