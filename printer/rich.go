package printer

import (
	"github.com/philipp01105/shedlog/core"
)

// Rich renders for interactive consoles that apply CSS through %c
// directives. The style argument follows the leader; unstyled settings drop
// both the directive and the style.
type Rich struct{}

// NewRich creates a rich printer
func NewRich() *Rich {
	return &Rich{}
}

// Print renders d
func (p *Rich) Print(d core.LogData) *core.Render {
	return render(p, d)
}

func (p *Rich) leader(d core.LogData) string {
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteByte(' ')
	if !d.Settings.Unstyled {
		buf.WriteString("%c")
	}
	if useEmoji(d.Settings) {
		buf.WriteByte(' ')
		buf.WriteString(d.Definition.Emoji)
	}
	buf.WriteByte(' ')
	buf.WriteString(leaderName(d))
	return buf.String()
}

func (p *Rich) style(d core.LogData) string {
	if d.Settings.Unstyled {
		return ""
	}
	return d.Settings.BaseStyle + d.Definition.Style
}

func (p *Rich) log(d core.LogData) *core.Render {
	out := make([]any, 0, len(d.Args)+3)
	out = append(out, p.leader(d))
	if s := p.style(d); s != "" {
		out = append(out, s)
	}
	if m := meta(d); m != "" {
		out = append(out, m)
	}
	out = append(out, d.Args...)
	return &core.Render{Method: d.Definition.Method, Args: out}
}

func (p *Rich) group(d core.LogData, collapsed bool) *core.Render {
	out := []any{p.leader(d)}
	if s := p.style(d); s != "" {
		out = append(out, s)
	}
	if first, ok := firstString(d); ok {
		out = append(out, first)
	}
	method := core.MethodGroup
	if collapsed {
		method = core.MethodGroupCollapsed
	}
	return &core.Render{Method: method, Args: out}
}

func (p *Rich) trace(d core.LogData) *core.Render {
	r := p.log(d)
	r.Method = core.MethodTrace
	return r
}
