// Package handler defines the output sink contract and the sinks that do not
// need their own package.
//
// A Handler receives the render of every printed log. Renders are
// (method, arguments) pairs produced by a printer; the handler decides how
// to write them. Handlers must tolerate every method, including ones they
// have no use for.
//
// MultiHandler fans out to several handlers and combines their errors with
// multierr. ZapHandler and SlogHandler bridge into zap and log/slog, mapping
// the render method onto a level. Func adapts a plain function and Nop
// discards everything.
//
// The console sink lives in the consolehandler subpackage.
package handler
