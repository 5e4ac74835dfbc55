package handler

import (
	"fmt"
	"strings"

	"github.com/philipp01105/shedlog/core"
)

// Text joins the render arguments into one line. Strings are written as-is
// with "%c" directives removed, and the CSS style argument that follows a
// directive is dropped. Other values use their %v form. A space separates
// arguments unless one is already present.
func Text(r core.Render) string {
	var b strings.Builder
	dropStyle := false
	for _, a := range r.Args {
		s, isString := a.(string)
		if dropStyle && isString {
			dropStyle = false
			continue
		}
		dropStyle = false
		if !isString {
			s = fmt.Sprintf("%v", a)
		} else if strings.Contains(s, "%c") {
			s = strings.ReplaceAll(s, "%c", "")
			dropStyle = true
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(s, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	return b.String()
}
