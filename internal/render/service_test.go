package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/apunisarkar/sevamcp/internal/domain"
	"github.com/apunisarkar/sevamcp/internal/usecase/search"
)

const testPortal = "https://eservices.uk.gov.in/user/services"

func sampleService() domain.Service {
	return domain.Service{
		ID:          "svc-1",
		Slug:        "income-certificate",
		NameEnglish: "Income Certificate",
		NameHindi:   "आय प्रमाण पत्र",
		Department: &domain.Department{
			ID:          "dept-1",
			Code:        "REV",
			NameEnglish: "Revenue Department",
			NameHindi:   "राजस्व विभाग",
		},
		Charge:              30,
		DeliveryTimeSeconds: 15 * 86400,
		HasCertificate:      true,
		Documents: []domain.Document{
			{NameEnglish: "Aadhaar Card", NameHindi: "आधार कार्ड", Required: true},
			{NameEnglish: "Ration Card", Required: false, Notes: []string{"If available"}},
		},
		OfficerSteps: []domain.OfficerStep{
			{Office: "Tehsil", Designation: "Tehsildar"},
			{Office: "District Office", Designation: "SDM"},
		},
	}
}

func TestDeliveryTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "As per rules"},
		{-5, "As per rules"},
		{3600, "Same day"},
		{86399, "Same day"},
		{86400, "1 day"},
		{86401, "1 days"},
		{15 * 86400, "15 days"},
	}

	for _, tt := range tests {
		if got := DeliveryTime(tt.seconds); got != tt.want {
			t.Errorf("DeliveryTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestApplyURL(t *testing.T) {
	tests := []struct {
		name string
		svc  domain.Service
		want string
	}{
		{
			name: "department and service",
			svc: domain.Service{
				ID:         "svc-1",
				Department: &domain.Department{ID: "dept-1"},
			},
			want: testPortal + "?department=dept-1&service=svc-1",
		},
		{
			name: "service only",
			svc:  domain.Service{ID: "svc-1"},
			want: testPortal + "?service=svc-1",
		},
		{
			name: "no identifiers",
			svc:  domain.Service{NameEnglish: "Orphan"},
			want: testPortal,
		},
		{
			name: "legacy string department gets escaped",
			svc: domain.Service{
				ID:         "svc-1",
				Department: &domain.Department{ID: "Panchayati Raj"},
			},
			want: testPortal + "?department=Panchayati+Raj&service=svc-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyURL(testPortal, tt.svc); got != tt.want {
				t.Errorf("ApplyURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceCardJSON(t *testing.T) {
	raw := serviceCardJSON(sampleService(), testPortal)

	var card map[string]any
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		t.Fatalf("card is not valid JSON: %v\n%s", err, raw)
	}
	if card["serviceName"] != "Income Certificate" {
		t.Errorf("serviceName = %v", card["serviceName"])
	}
	if strings.Contains(raw, `&`) {
		t.Error("card JSON must not HTML-escape URLs")
	}

	docs := card["documents"].(map[string]any)
	if len(docs["required"].([]any)) != 1 || len(docs["optional"].([]any)) != 1 {
		t.Errorf("unexpected document split: %v", docs)
	}
}

func TestServiceCardJSON_Defaults(t *testing.T) {
	raw := serviceCardJSON(domain.Service{ID: "x"}, testPortal)

	var card map[string]any
	if err := json.Unmarshal([]byte(raw), &card); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if card["serviceName"] != "Service" {
		t.Errorf("expected default service name, got %v", card["serviceName"])
	}
	dept := card["department"].(map[string]any)
	if dept["name"] != "Government Department" {
		t.Errorf("expected default department name, got %v", dept["name"])
	}
}

func TestServiceCardText(t *testing.T) {
	text := ServiceCardText(sampleService(), 95.2, testPortal)

	for _, want := range []string{
		"**Service Name:** Income Certificate",
		"**सेवा का नाम:** आय प्रमाण पत्र",
		"**Department:** Revenue Department",
		"**Fee:** ₹30",
		"**Timeline:** 15 days",
		"**Certificate:** Yes, certificate will be issued",
		"• Aadhaar Card",
		"  (आधार कार्ड)",
		"**Optional Documents / वैकल्पिक दस्तावेज:**",
		"• Ration Card",
		"1. Tehsil → Tehsildar",
		"2. District Office → SDM",
		"**Apply Now:** " + testPortal + "?department=dept-1&service=svc-1",
		"**Match Confidence:** 95%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("card text missing %q", want)
		}
	}
}

func TestServiceCardText_ZeroScoreOmitsConfidence(t *testing.T) {
	text := ServiceCardText(sampleService(), 0, testPortal)
	if strings.Contains(text, "Match Confidence") {
		t.Error("zero score must not render a confidence line")
	}
}

func TestServiceCardText_NoDocuments(t *testing.T) {
	svc := domain.Service{ID: "x", NameEnglish: "Bare Service"}
	text := ServiceCardText(svc, 50, testPortal)

	if !strings.Contains(text, "**Required Documents / आवश्यक दस्तावेज:**\n\nNone") {
		t.Error("expected 'None' for missing required documents")
	}
	if strings.Contains(text, "Optional Documents") {
		t.Error("optional section must be omitted when empty")
	}
	if strings.Contains(text, "Processing Flow") {
		t.Error("processing flow must be omitted when empty")
	}
}

func TestServiceResponse_NoMatches(t *testing.T) {
	text := ServiceResponse(nil, "xyz service", testPortal)

	if !strings.Contains(text, "**No Services Found**") {
		t.Error("missing no-services header")
	}
	if !strings.Contains(text, `"xyz service"`) {
		t.Error("missing echoed query")
	}
	if !strings.Contains(text, "Try different keywords") {
		t.Error("missing suggestions")
	}
}

func TestServiceResponse_WrapsBestMatchCard(t *testing.T) {
	matches := []search.Match{{Service: sampleService(), Score: 100}}
	text := ServiceResponse(matches, "income", testPortal)

	start := strings.Index(text, "{{service-card}}\n")
	end := strings.Index(text, "\n{{/service-card}}")
	if start != 0 || end < 0 {
		t.Fatalf("card envelope malformed:\n%s", text[:min(200, len(text))])
	}

	var card map[string]any
	payload := text[start+len("{{service-card}}\n") : end]
	if err := json.Unmarshal([]byte(payload), &card); err != nil {
		t.Fatalf("embedded card is not valid JSON: %v", err)
	}
	if !strings.Contains(text, "**Service Name:** Income Certificate") {
		t.Error("missing text section after the card")
	}
	if strings.Contains(text, "Other Matches") {
		t.Error("single match must not render an Other Matches section")
	}
}

func TestServiceResponse_OtherMatchesCappedAtThree(t *testing.T) {
	matches := []search.Match{
		{Service: domain.Service{ID: "1", NameEnglish: "Best"}, Score: 100},
		{Service: domain.Service{ID: "2", NameEnglish: "Second", NameHindi: "दूसरा"}, Score: 90},
		{Service: domain.Service{ID: "3", NameEnglish: "Third"}, Score: 80},
		{Service: domain.Service{ID: "4", NameEnglish: "Fourth"}, Score: 70},
		{Service: domain.Service{ID: "5", NameEnglish: "Fifth"}, Score: 60},
	}
	text := ServiceResponse(matches, "q", testPortal)

	if !strings.Contains(text, "**Other Matches:**") {
		t.Fatal("missing Other Matches section")
	}
	for _, want := range []string{"• Second (90% match)", "  दूसरा", "• Third (80% match)", "• Fourth (70% match)"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing other match line %q", want)
		}
	}
	if strings.Contains(text, "Fifth") {
		t.Error("other matches must cap at three entries")
	}
}
