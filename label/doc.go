// Package label implements the shared record behind labeled logs.
//
// A Label is identified by its name. While a Shed exists, every log that
// asks for the same name receives the same *Label, which is how context
// added at one call site becomes visible at another. Without a Shed each log
// gets its own unshared Label.
package label
