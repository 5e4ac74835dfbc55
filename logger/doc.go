// Package logger is the public API of shedlog. Most users only need to
// import this package.
//
// A Logger is an immutable log factory: the configuration merged into every
// log, the output sink, and optionally a specific Shed and printer are set
// once through the Builder. Each call to New returns a Log, which collects
// chainable modifiers and finally terminates at a level:
//
//	res := log.New().Label("checkout").Namespace("http").Count().Info("order placed", id)
//
// Modifiers only enqueue commands. When a terminator runs, the queue is
// applied once (label assignment first), the log is snapshotted, rendered by
// the printer, checked against the threshold, the filters, the test switch
// and any assertion, written to the output sink if it passes, stored in the
// Shed and handed to the Shed's listeners. Unknown level names return an
// empty result instead of failing.
//
// The package initializes a default Logger (console output, printer chosen
// from stdout) in init(). The package-level functions Info, Error, Label,
// etc. delegate to it:
//
//	logger.Label("jobs").Thread("attempt", 2)
//
// Bundle collects the logs of one call site in order without needing a
// Shed, and Seal turns a configured log into a factory of identical logs.
package logger
