package render

import (
	"fmt"
	"strings"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// StatsResponse renders system-wide application statistics.
func StatsResponse(stats domain.Stats) string {
	var b strings.Builder

	b.WriteString("**Apuni Sarkar System Statistics**\n\n")
	b.WriteString("Uttarakhand E-Governance Portal\n\n")
	b.WriteString(divider + "\n\n")

	fmt.Fprintf(&b, "**Total Applications:** %s\n", groupThousands(stats.Total))
	fmt.Fprintf(&b, "**Completed:** %s\n", groupThousands(stats.Completed))
	fmt.Fprintf(&b, "**In Progress:** %s\n", groupThousands(stats.InProgress))
	fmt.Fprintf(&b, "**Rejected:** %s\n", groupThousands(stats.Rejected))
	fmt.Fprintf(&b, "**Published Certificates:** %s\n", groupThousands(stats.Published))
	fmt.Fprintf(&b, "**Today's Applications:** %s\n", groupThousands(stats.TodayApplications))
	fmt.Fprintf(&b, "**Completion Rate:** %s\n\n", orNA(stats.CompletionRate))
	fmt.Fprintf(&b, "**Last Updated:** %s\n", FormatDate(stats.GeneratedAt))

	return b.String()
}
