// Package core defines the shared types of the shedlog framework.
//
// It provides the level registry (LevelDefinition and the nine default
// levels alert through verbose), the configuration model, the LogData
// snapshot captured when a log terminates, and the Render pair handed to
// output sinks.
//
// Configuration comes in two forms. Config is partial: every scalar is a
// pointer so an unset value can be told apart from a zero value, and it is
// what users and global overrides supply. Settings is the fully resolved
// form. Settings.Merge deep-merges a Config over existing settings without
// modifying them, so the same defaults can seed any number of logs.
//
// Modifiers are plain values. A log queues them while it is being built and
// applies them in a single pass when it terminates; Modifier.Prepended marks
// the label modifier, which always runs first.
//
// Misuse of the API never fails a log call. It is reported through Warn,
// which writes to a zap logger that can be replaced with SetWarnLogger.
package core
