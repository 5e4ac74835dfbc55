package printer

import (
	"fmt"

	"github.com/mgutz/ansi"

	"github.com/philipp01105/shedlog/core"
)

// leaderWidth is the column the terminal leader is padded to.
const leaderWidth = 15

// Terminal renders for plain streams. The leader is padded to a fixed width
// and, when color is enabled and the settings are styled, wrapped in the
// level's ANSI style.
type Terminal struct {
	color bool
}

// NewTerminal creates a terminal printer
func NewTerminal(color bool) *Terminal {
	return &Terminal{color: color}
}

// Print renders d
func (p *Terminal) Print(d core.LogData) *core.Render {
	return render(p, d)
}

func (p *Terminal) leader(d core.LogData) string {
	var emoji string
	if useEmoji(d.Settings) {
		emoji = " " + d.Definition.Emoji
	}
	leader := emoji + fmt.Sprintf("%-*s", leaderWidth, " "+leaderName(d))
	if p.color && !d.Settings.Unstyled && d.Definition.Terminal != "" {
		return ansi.Color(leader, d.Definition.Terminal)
	}
	return leader
}

func (p *Terminal) log(d core.LogData) *core.Render {
	out := make([]any, 0, len(d.Args)+2)
	out = append(out, p.leader(d))
	if m := meta(d); m != "" {
		out = append(out, m)
	}
	out = append(out, d.Args...)
	return &core.Render{Method: d.Definition.Method, Args: out}
}

func (p *Terminal) group(d core.LogData, collapsed bool) *core.Render {
	out := []any{p.leader(d)}
	if first, ok := firstString(d); ok {
		out = append(out, first)
	}
	method := core.MethodGroup
	if collapsed {
		method = core.MethodGroupCollapsed
	}
	return &core.Render{Method: method, Args: out}
}

func (p *Terminal) trace(d core.LogData) *core.Render {
	r := p.log(d)
	r.Method = core.MethodTrace
	return r
}
