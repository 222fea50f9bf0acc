// Package render builds the bilingual text and card payloads returned to
// the conversational agent. All functions are deterministic string
// builders over domain types; no I/O.
package render

import (
	"strconv"
	"strings"
	"time"
)

const divider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

const heavyDivider = "═══════════════════════════════════════════"

// FormatDate renders a timestamp as "January 02, 2006, 03:04 PM".
// A nil timestamp renders as "N/A".
func FormatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("January 02, 2006, 03:04 PM")
}

// groupThousands renders n with comma separators (1234567 -> "1,234,567").
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
