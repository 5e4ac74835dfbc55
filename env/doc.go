// Package env holds the process-level switches a log consults at
// termination: the test-suppression mode and the descriptor of the output
// surface used to pick a printer.
//
// In test mode no log prints, regardless of level, filters or standout.
// Logs are still stored and listeners still fire, so test code can observe
// them without console noise.
package env
