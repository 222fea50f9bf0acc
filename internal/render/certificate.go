package render

import (
	"fmt"
	"strings"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// CertificateResponse renders certificate details and download links.
func CertificateResponse(cert domain.Certificate) string {
	var b strings.Builder

	b.WriteString("**Certificate Information**\n\n")
	b.WriteString(divider + "\n\n")

	fmt.Fprintf(&b, "**Application ID:** %s\n", orNA(cert.ApplicationID))
	fmt.Fprintf(&b, "**Certificate Number:** %s\n", orNA(cert.CertificateNumber))
	fmt.Fprintf(&b, "**Service:** %s\n", orNA(cert.ServiceName))
	if cert.ServiceNameHindi != "" {
		fmt.Fprintf(&b, "**सेवा:** %s\n", cert.ServiceNameHindi)
	}
	fmt.Fprintf(&b, "**Applicant:** %s\n", orNA(cert.ApplicantName))
	if cert.ApplicantMobile != "" {
		fmt.Fprintf(&b, "**Mobile:** %s\n", cert.ApplicantMobile)
	}
	fmt.Fprintf(&b, "**Issue Date:** %s\n", FormatDate(cert.IssuedAt))
	if cert.PublishedAt != nil {
		fmt.Fprintf(&b, "**Published Date:** %s\n", FormatDate(cert.PublishedAt))
	}
	if cert.ValidFrom != nil {
		fmt.Fprintf(&b, "**Valid From:** %s\n", FormatDate(cert.ValidFrom))
	}
	if cert.ValidUntil != nil {
		fmt.Fprintf(&b, "**Valid Until:** %s\n", FormatDate(cert.ValidUntil))
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("**Download Links:**\n\n")

	if cert.PreviewURL != "" {
		fmt.Fprintf(&b, "**Preview (View Online):**\n%s\n\n", cert.PreviewURL)
	}
	if cert.DownloadURL != "" {
		fmt.Fprintf(&b, "**Download (Save PDF):**\n%s\n\n", cert.DownloadURL)
	}

	b.WriteString(divider + "\n\n")
	b.WriteString("**Instructions:**\n")
	b.WriteString("1. Click the preview link to view your certificate\n")
	b.WriteString("2. Use the download link to save the PDF\n")
	b.WriteString("3. Keep this certificate safe for official use")

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
