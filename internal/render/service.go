package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/usecase/search"
)

// DeliveryTime renders a delivery duration in seconds as a human-readable
// estimate.
func DeliveryTime(seconds int) string {
	if seconds <= 0 {
		return "As per rules"
	}
	days := float64(seconds) / 86400
	switch {
	case days < 1:
		return "Same day"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", int(days))
	}
}

// ApplyURL builds the portal application link for a service.
func ApplyURL(base string, svc domain.Service) string {
	var deptID string
	if svc.Department != nil {
		deptID = svc.Department.ID
	}

	q := url.Values{}
	switch {
	case deptID != "" && svc.ID != "":
		q.Set("department", deptID)
		q.Set("service", svc.ID)
	case svc.ID != "":
		q.Set("service", svc.ID)
	default:
		return base
	}
	return base + "?" + q.Encode()
}

// serviceCard is the structured card payload embedded in the response for
// the chat frontend to render.
type serviceCard struct {
	ServiceID        string         `json:"serviceId"`
	ServiceName      string         `json:"serviceName"`
	ServiceNameHindi string         `json:"serviceNameHindi"`
	Slug             string         `json:"slug"`
	Department       cardDepartment `json:"department"`
	Fee              float64        `json:"fee"`
	Timeline         string         `json:"timeline"`
	TimelineSeconds  int            `json:"timelineSeconds"`
	HasCertificate   bool           `json:"hasCertificate"`
	Documents        cardDocuments  `json:"documents"`
	ApplyURL         string         `json:"applyUrl"`
	OfficerFlow      []cardOfficer  `json:"officerFlow"`
}

type cardDepartment struct {
	Name      string `json:"name"`
	NameHindi string `json:"nameHindi"`
	Code      string `json:"code"`
}

type cardDocument struct {
	Name        string `json:"name"`
	NameHindi   string `json:"nameHindi"`
	Description string `json:"description"`
}

type cardDocuments struct {
	Required []cardDocument `json:"required"`
	Optional []cardDocument `json:"optional"`
}

type cardOfficer struct {
	Office      string `json:"office"`
	Designation string `json:"designation"`
}

func buildServiceCard(svc domain.Service, portalBase string) serviceCard {
	card := serviceCard{
		ServiceID:        svc.ID,
		ServiceName:      svc.NameEnglish,
		ServiceNameHindi: svc.NameHindi,
		Slug:             svc.Slug,
		Department:       cardDepartment{Name: "Government Department"},
		Fee:              svc.Charge,
		Timeline:         DeliveryTime(svc.DeliveryTimeSeconds),
		TimelineSeconds:  svc.DeliveryTimeSeconds,
		HasCertificate:   svc.HasCertificate,
		Documents:        cardDocuments{Required: []cardDocument{}, Optional: []cardDocument{}},
		ApplyURL:         ApplyURL(portalBase, svc),
		OfficerFlow:      []cardOfficer{},
	}
	if card.ServiceName == "" {
		card.ServiceName = "Service"
	}

	if d := svc.Department; d != nil {
		card.Department = cardDepartment{
			Name:      d.NameEnglish,
			NameHindi: d.NameHindi,
			Code:      d.Code,
		}
		if card.Department.Name == "" {
			card.Department.Name = "Government Department"
		}
	}

	for _, doc := range svc.Documents {
		cd := cardDocument{Name: doc.NameEnglish, NameHindi: doc.NameHindi}
		if len(doc.Notes) > 0 {
			cd.Description = doc.Notes[0]
		}
		if doc.Required {
			card.Documents.Required = append(card.Documents.Required, cd)
		} else {
			card.Documents.Optional = append(card.Documents.Optional, cd)
		}
	}

	for _, step := range svc.OfficerSteps {
		card.OfficerFlow = append(card.OfficerFlow, cardOfficer{
			Office:      step.Office,
			Designation: step.Designation,
		})
	}

	return card
}

// serviceCardJSON marshals the card without HTML escaping so URLs and
// Devanagari text stay readable.
func serviceCardJSON(svc domain.Service, portalBase string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildServiceCard(svc, portalBase)); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// documentsList renders the subset of documents matching required.
func documentsList(documents []domain.Document, required bool) string {
	var lines []string
	for _, doc := range documents {
		if doc.Required != required {
			continue
		}
		switch {
		case doc.NameEnglish != "":
			lines = append(lines, "• "+doc.NameEnglish)
			if doc.NameHindi != "" {
				lines = append(lines, "  ("+doc.NameHindi+")")
			}
		case doc.NameHindi != "":
			lines = append(lines, "• "+doc.NameHindi)
		}
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

// ServiceCardText renders one service as bilingual markdown.
func ServiceCardText(svc domain.Service, score float64, portalBase string) string {
	var b strings.Builder

	b.WriteString("**Service Information / सेवा जानकारी**\n\n")
	b.WriteString(divider + "\n\n")

	name := svc.NameEnglish
	if name == "" {
		name = "N/A"
	}
	fmt.Fprintf(&b, "**Service Name:** %s\n", name)
	if svc.NameHindi != "" {
		fmt.Fprintf(&b, "**सेवा का नाम:** %s\n", svc.NameHindi)
	}
	b.WriteString("\n")

	deptName, deptNameHindi := "N/A", ""
	if svc.Department != nil {
		if svc.Department.NameEnglish != "" {
			deptName = svc.Department.NameEnglish
		}
		deptNameHindi = svc.Department.NameHindi
	}
	fmt.Fprintf(&b, "**Department:** %s\n", deptName)
	if deptNameHindi != "" {
		fmt.Fprintf(&b, "**विभाग:** %s\n", deptNameHindi)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Fee:** ₹%v\n", svc.Charge)
	fmt.Fprintf(&b, "**Timeline:** %s\n", DeliveryTime(svc.DeliveryTimeSeconds))
	if svc.HasCertificate {
		b.WriteString("**Certificate:** Yes, certificate will be issued\n")
	}

	b.WriteString("\n" + divider + "\n\n")

	b.WriteString("**Required Documents / आवश्यक दस्तावेज:**\n\n")
	b.WriteString(documentsList(svc.Documents, true) + "\n\n")

	if optional := documentsList(svc.Documents, false); optional != "None" {
		b.WriteString("**Optional Documents / वैकल्पिक दस्तावेज:**\n\n")
		b.WriteString(optional + "\n\n")
	}

	if len(svc.OfficerSteps) > 0 {
		b.WriteString(divider + "\n\n")
		b.WriteString("**Processing Flow:**\n\n")
		for i, step := range svc.OfficerSteps {
			office, designation := step.Office, step.Designation
			if office == "" {
				office = "Office"
			}
			if designation == "" {
				designation = "Officer"
			}
			fmt.Fprintf(&b, "%d. %s → %s\n", i+1, office, designation)
		}
		b.WriteString("\n")
	}

	b.WriteString(divider + "\n\n")

	fmt.Fprintf(&b, "**Apply Now:** %s\n\n", ApplyURL(portalBase, svc))
	b.WriteString("**Next Steps:**\n")
	b.WriteString("• Click the link above to start your application\n")
	b.WriteString("• Keep all required documents ready\n")
	b.WriteString("• You'll receive an application ID after submission\n")

	if score > 0 {
		fmt.Fprintf(&b, "\n**Match Confidence:** %.0f%%", score)
	}

	return b.String()
}

// ServiceResponse builds the full get_service_info response: the best
// match as a wrapped card plus text, then up to three other matches.
func ServiceResponse(matches []search.Match, query, portalBase string) string {
	if len(matches) == 0 {
		return fmt.Sprintf(
			"**No Services Found**\n\n"+
				"Could not find any services matching: %q\n\n"+
				"**Suggestions:**\n"+
				"• Try different keywords (English or Hindi)\n"+
				"• Check for spelling errors\n"+
				"• Use common terms like 'domicile', 'income', 'caste'\n"+
				"• Ask 'What services are available?' to see all options",
			query,
		)
	}

	best := matches[0]
	card := serviceCardJSON(best.Service, portalBase)
	wrapped := "{{service-card}}\n" + card + "\n{{/service-card}}"

	text := ServiceCardText(best.Service, best.Score, portalBase)

	if len(matches) > 1 {
		var b strings.Builder
		b.WriteString(text)
		b.WriteString("\n\n" + divider + "\n\n")
		b.WriteString("**Other Matches:**\n\n")
		for _, m := range matches[1:min(4, len(matches))] {
			name := m.Service.NameEnglish
			if name == "" {
				name = "N/A"
			}
			fmt.Fprintf(&b, "• %s (%.0f%% match)\n", name, m.Score)
			if m.Service.NameHindi != "" {
				fmt.Fprintf(&b, "  %s\n", m.Service.NameHindi)
			}
		}
		text = b.String()
	}

	return wrapped + "\n\n" + text
}
