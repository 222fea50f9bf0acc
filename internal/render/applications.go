package render

import (
	"fmt"
	"strings"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// MobileSearchResponse renders the applications found for a mobile number.
func MobileSearchResponse(apps []domain.ApplicationSummary) string {
	if len(apps) == 0 {
		return "**No Applications Found**\n\n" +
			"No applications found for the provided mobile number.\n\n" +
			"Please verify:\n" +
			"• The mobile number is correct\n" +
			"• You have submitted applications using this number\n" +
			"• The number is registered in the system\n\n" +
			"If you need help, contact Apuni Sarkar support."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Applications Found: %d**\n\n", len(apps))
	b.WriteString(divider + "\n\n")

	for i, app := range apps {
		status := app.Status
		if status == "" {
			status = "UNKNOWN"
		}

		indicator := "[ ]"
		switch {
		case app.CertificateReady:
			indicator = "[✓]"
		case status == "REJECTED":
			indicator = "[X]"
		}

		fmt.Fprintf(&b, "%s **%s**\n", indicator, orNA(app.ApplicationID))
		fmt.Fprintf(&b, "   Service: %s\n", orNA(app.ServiceName))
		fmt.Fprintf(&b, "   Status: %s\n", status)
		fmt.Fprintf(&b, "   Submitted: %s\n", FormatDate(app.SubmittedAt))

		if app.CompletedAt != nil {
			fmt.Fprintf(&b, "   Completed: %s\n", FormatDate(app.CompletedAt))
		}
		if app.CertificateReady {
			b.WriteString("   Certificate Ready\n")
		}

		if i < len(apps)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("**Next Steps:**\n")
	b.WriteString("• To check details: \"Check status of [Application ID]\"\n")
	b.WriteString("• To download certificate: \"Download certificate for [Application ID]\"\n")

	return b.String()
}
