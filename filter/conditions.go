package filter

import (
	"slices"

	"github.com/samber/lo"

	"github.com/philipp01105/shedlog/core"
	"github.com/philipp01105/shedlog/env"
)

// Allowed decides whether a terminated log may print: its level must be
// within the threshold, the process must not be in test mode, the global
// filters must pass and the log must not be silent.
func Allowed(d core.LogData, strictExclude bool) bool {
	return LevelActive(d) &&
		!env.IsTest() &&
		PassesFilters(d, strictExclude) &&
		!d.IsSilent
}

// LevelActive reports whether the log's level is within the configured
// threshold.
func LevelActive(d core.LogData) bool {
	return d.Definition != nil && d.Definition.Level <= d.Settings.Level
}

// PassesFilters applies the global filters. A standout log skips include
// checks. It also skips exclude checks and hideAll unless strictExclude is
// set.
func PassesFilters(d core.LogData, strictExclude bool) bool {
	f := d.Settings.Filters
	skipInclude := d.IsStandout
	skipExclude := d.IsStandout && !strictExclude

	if f.HideAll && !skipExclude {
		return false
	}
	return levelAllowed(d, f.Level, skipInclude, skipExclude) &&
		labelAllowed(d, f.Label, skipInclude, skipExclude) &&
		namespaceAllowed(d, f.Namespace, skipInclude, skipExclude)
}

func levelAllowed(d core.LogData, rule core.LevelRule, skipInclude, skipExclude bool) bool {
	if !skipInclude && len(rule.Include) > 0 && !slices.Contains(rule.Include, d.Level) {
		return false
	}
	if !skipExclude && slices.Contains(rule.Exclude, d.Level) {
		return false
	}
	return true
}

func labelAllowed(d core.LogData, rule core.FilterRule, skipInclude, skipExclude bool) bool {
	name := d.Label.Name
	if !skipInclude && len(rule.Include) > 0 && (name == "" || !slices.Contains(rule.Include, name)) {
		return false
	}
	if !skipExclude && name != "" && slices.Contains(rule.Exclude, name) {
		return false
	}
	return true
}

func namespaceAllowed(d core.LogData, rule core.FilterRule, skipInclude, skipExclude bool) bool {
	if !skipInclude && len(rule.Include) > 0 && !intersects(d.Namespace, rule.Include) {
		return false
	}
	if !skipExclude && intersects(d.Namespace, rule.Exclude) {
		return false
	}
	return true
}

func intersects(a, b []string) bool {
	return lo.Some(a, b)
}
