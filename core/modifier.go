package core

import "slices"

// ModifierKind identifies a modifier command.
type ModifierKind uint8

const (
	ModLabel ModifierKind = iota
	ModNamespace
	ModCount
	ModCountReset
	ModCountClear
	ModDump
	ModMeta
	ModPrintMode
	ModStandout
	ModSilent
	ModAssert
	ModTest
	ModTime
	ModTimeEnd
	ModTimeNow
	ModTimestamp
)

var modifierNames = [...]string{
	ModLabel:      "label",
	ModNamespace:  "namespace",
	ModCount:      "count",
	ModCountReset: "countReset",
	ModCountClear: "countClear",
	ModDump:       "dump",
	ModMeta:       "meta",
	ModPrintMode:  "printMode",
	ModStandout:   "standout",
	ModSilent:     "silent",
	ModAssert:     "assert",
	ModTest:       "test",
	ModTime:       "time",
	ModTimeEnd:    "timeEnd",
	ModTimeNow:    "timeNow",
	ModTimestamp:  "timestamp",
}

// String returns the modifier name
func (k ModifierKind) String() string {
	if int(k) < len(modifierNames) {
		return modifierNames[k]
	}
	return "unknown"
}

// Modifier is a queued command applied to a log when it terminates. Only the
// fields relevant to Kind are set.
type Modifier struct {
	Kind  ModifierKind
	Name  string
	Names []string
	Key   string
	Value any
	Flag  bool
	Mode  PrintMode
}

// Prepended reports whether the modifier is queued ahead of all others.
// Label assignment runs first so later modifiers can rely on it.
func (m Modifier) Prepended() bool {
	return m.Kind == ModLabel
}

// LabelModifier assigns the named label.
func LabelModifier(name string) Modifier {
	return Modifier{Kind: ModLabel, Name: name}
}

// NamespaceModifier appends namespaces. names is copied.
func NamespaceModifier(names ...string) Modifier {
	return Modifier{Kind: ModNamespace, Names: slices.Clone(names)}
}

// MetaModifier sets a meta value.
func MetaModifier(key string, value any) Modifier {
	return Modifier{Kind: ModMeta, Key: key, Value: value}
}

// PrintModeModifier selects the render shape.
func PrintModeModifier(mode PrintMode) Modifier {
	return Modifier{Kind: ModPrintMode, Mode: mode}
}

// AssertModifier records an assertion result.
func AssertModifier(ok bool) Modifier {
	return Modifier{Kind: ModAssert, Flag: ok}
}

// TestModifier records a test expression result.
func TestModifier(ok bool) Modifier {
	return Modifier{Kind: ModTest, Flag: ok}
}

// Simple returns a modifier of a kind that carries no payload.
func Simple(kind ModifierKind) Modifier {
	return Modifier{Kind: kind}
}
