package render

import (
	"fmt"
	"strings"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// statusBadges maps backend status codes to display labels.
var statusBadges = map[string]string{
	"SUBMITTED":            "In Progress",
	"IN_PROGRESS":          "Processing",
	"COMPLETED":            "Completed",
	"PUBLISHED":            "Published",
	"REJECTED":             "Rejected",
	"AWAITING_PUBLICATION": "Awaiting Publication",
}

// actionLabels maps officer action codes to display labels.
var actionLabels = map[string]string{
	"SUBMITTED": "Submitted",
	"RECOMMEND": "Recommended",
	"FORWARD":   "Forwarded",
	"APPROVE":   "Approved",
	"REJECT":    "Rejected",
	"SIGN":      "Signed",
	"PUBLISH":   "Published",
	"COMPLETED": "Completed",
}

// StatusBadge renders an application status as a display label. Unknown
// statuses pass through unchanged.
func StatusBadge(status string) string {
	if badge, ok := statusBadges[status]; ok {
		return badge
	}
	return status
}

// ProgressBar renders a 20-slot bar with the completion percentage.
func ProgressBar(completed, total int) string {
	if total == 0 {
		return ""
	}
	percentage := completed * 100 / total
	filled := completed * 20 / total
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", 20-filled),
		percentage,
	)
}

// TimelineResponse renders the application tracking timeline.
func TimelineResponse(tl domain.Timeline) string {
	var b strings.Builder

	appID := tl.ApplicationID
	if appID == "" {
		appID = "N/A"
	}
	name := tl.ApplicantName
	if name == "" {
		name = "N/A"
	}
	service := tl.ServiceName
	if service == "" {
		service = "N/A"
	}
	status := tl.Status
	if status == "" {
		status = "UNKNOWN"
	}

	totalSteps := tl.TotalSteps
	if totalSteps == 0 {
		totalSteps = len(tl.Steps)
	}

	b.WriteString("**Application Tracking / आवेदन ट्रैकिंग**\n\n")
	b.WriteString(heavyDivider + "\n\n")

	fmt.Fprintf(&b, "**Status:** %s\n", StatusBadge(status))

	switch {
	case tl.CertificateReady:
		b.WriteString("**Your certificate is ready for download.**\n")
	case status == "REJECTED":
		b.WriteString("**Application has been rejected.**\n")
	case status == "COMPLETED":
		b.WriteString("**Processing completed successfully.**\n")
	default:
		stage := tl.CurrentStage
		if stage == "" {
			stage = "Unknown"
		}
		fmt.Fprintf(&b, "**Current Stage:** %s\n", stage)
	}
	b.WriteString("\n")

	if tl.CompletedAt != nil {
		fmt.Fprintf(&b, "**Completed:** %s\n", FormatDate(tl.CompletedAt))
	} else if tl.EstimatedAt != nil && status != "REJECTED" && status != "COMPLETED" {
		fmt.Fprintf(&b, "**Expected Completion:** %s\n", FormatDate(tl.EstimatedAt))
	}

	b.WriteString("\n" + heavyDivider + "\n\n")

	if totalSteps > 0 && status != "REJECTED" {
		b.WriteString("**Progress:**\n")
		b.WriteString(ProgressBar(tl.CompletedSteps, totalSteps) + "\n")
		fmt.Fprintf(&b, "*%d of %d steps completed*\n\n", tl.CompletedSteps, totalSteps)
	}

	b.WriteString(heavyDivider + "\n\n")

	b.WriteString("**Application Details:**\n\n")
	b.WriteString("```\n")
	fmt.Fprintf(&b, "Application ID : %s\n", appID)
	fmt.Fprintf(&b, "Applicant Name : %s\n", name)
	if tl.ApplicantMobile != "" {
		fmt.Fprintf(&b, "Mobile Number  : %s\n", tl.ApplicantMobile)
	}
	fmt.Fprintf(&b, "Service Type   : %s\n", service)
	fmt.Fprintf(&b, "Submitted On   : %s\n", FormatDate(tl.SubmittedAt))
	b.WriteString("```\n\n")

	b.WriteString(heavyDivider + "\n\n")

	b.WriteString("**Tracking Details:**\n\n")
	for i, step := range tl.Steps {
		writeTimelineStep(&b, step)
		if i < len(tl.Steps)-1 {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(heavyDivider + "\n\n")

	switch {
	case tl.CertificateReady:
		b.WriteString("### **Certificate Ready**\n\n")
		fmt.Fprintf(&b, "To download: *\"Get certificate for %s\"*\n\n", appID)
	case status == "REJECTED":
		b.WriteString("### **Application Rejected**\n\n")
		b.WriteString("Contact the office for more details.\n\n")
	case status == "COMPLETED":
		b.WriteString("### **Processing Complete**\n\n")
		b.WriteString("Your application has been successfully processed.\n\n")
	default:
		b.WriteString("### **Under Process**\n\n")
		if tl.EstimatedAt != nil {
			fmt.Fprintf(&b, "Expected completion: %s\n\n", FormatDate(tl.EstimatedAt))
		}
		fmt.Fprintf(&b, "Track anytime: *\"Check %s\"*\n\n", appID)
	}

	b.WriteString("---\n\n")
	b.WriteString("*Check status anytime with your Application ID or mobile number.*\n")

	return b.String()
}

func writeTimelineStep(b *strings.Builder, step domain.TimelineStep) {
	indicator := "[ ]"
	if step.Completed {
		indicator = "[✓]"
	}

	stageName := step.StageName
	if stageName == "" {
		stageName = "Processing Step"
	}
	if step.Milestone {
		fmt.Fprintf(b, "### %s **%s**", indicator, stageName)
	} else {
		fmt.Fprintf(b, "%s **%s**", indicator, stageName)
	}
	if step.StageNameHindi != "" {
		fmt.Fprintf(b, " / *%s*", step.StageNameHindi)
	}
	b.WriteString("\n")

	if step.Timestamp != nil {
		fmt.Fprintf(b, "   Date: %s\n", FormatDate(step.Timestamp))
	}

	office := step.Office
	if office == "" {
		office = "Government Office"
	}
	fmt.Fprintf(b, "   Office: %s\n", office)

	if step.OfficerName != "" && step.OfficerName != "Officer" && step.OfficerName != "System" {
		fmt.Fprintf(b, "   Officer: %s", step.OfficerName)
		if step.OfficerDesignation != "" {
			fmt.Fprintf(b, " (%s)", step.OfficerDesignation)
		}
		b.WriteString("\n")
	}

	if step.Action != "" && step.Action != "PROCESSING" {
		label := step.Action
		if l, ok := actionLabels[step.Action]; ok {
			label = l
		}
		fmt.Fprintf(b, "   Action: %s\n", label)
	}

	if step.Remarks != "" {
		fmt.Fprintf(b, "   Remarks: %s\n", step.Remarks)
	}
}
