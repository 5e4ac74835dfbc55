// Package consolehandler provides the console output sink.
//
// ConsoleHandler writes each render as a line of text. Error and warn
// renders go to ErrWriter (default os.Stderr); everything else goes to
// Writer (default os.Stdout). A single mutex serializes writes to both
// streams so that lines from concurrent logs never interleave and group
// indentation stays consistent.
//
// Group and groupCollapsed renders indent the lines that follow them by
// two spaces until the matching groupEnd. Table renders lay out slices and
// maps as aligned rows, and trace renders are followed by the goroutine
// stack unless DisableTraceStack is set.
package consolehandler
