package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// The backend is loose about shapes: identifiers arrive as "_id" or "id",
// department is either an embedded object or (legacy) a bare string, and
// the services list may or may not be wrapped in a {success, data}
// envelope. Everything is resolved here so the rest of the code sees one
// canonical domain shape.

type serviceDTO struct {
	ID                    string          `json:"id"`
	MongoID               string          `json:"_id"`
	Slug                  string          `json:"slug"`
	NameEnglish           string          `json:"nameEnglish"`
	NameHindi             string          `json:"nameHindi"`
	Department            json.RawMessage `json:"department"`
	Charge                float64         `json:"charge"`
	DeliveryTimeInSeconds int             `json:"deliveryTimeInSeconds"`
	HasCertificate        bool            `json:"hasCertificate"`
	Documents             []documentDTO   `json:"documents"`
	OfficerFields         []officerDTO    `json:"officerFields"`
}

type departmentDTO struct {
	ID          string `json:"id"`
	MongoID     string `json:"_id"`
	Code        string `json:"code"`
	NameEnglish string `json:"nameEnglish"`
	NameHindi   string `json:"nameHindi"`
}

type documentDTO struct {
	NameEnglish string   `json:"nameEnglish"`
	NameHindi   string   `json:"nameHindi"`
	Required    bool     `json:"required"`
	Notes       []string `json:"notes"`
}

type officerDTO struct {
	Office      string `json:"office"`
	Designation string `json:"designation"`
}

func (d serviceDTO) toDomain() (domain.Service, error) {
	svc := domain.Service{
		ID:                  firstNonEmpty(d.MongoID, d.ID),
		Slug:                d.Slug,
		NameEnglish:         d.NameEnglish,
		NameHindi:           d.NameHindi,
		Charge:              d.Charge,
		DeliveryTimeSeconds: d.DeliveryTimeInSeconds,
		HasCertificate:      d.HasCertificate,
	}

	dept, err := resolveDepartment(d.Department)
	if err != nil {
		return domain.Service{}, fmt.Errorf("service %q: %w", svc.ID, err)
	}
	svc.Department = dept

	for _, doc := range d.Documents {
		svc.Documents = append(svc.Documents, domain.Document(doc))
	}
	for _, of := range d.OfficerFields {
		svc.OfficerSteps = append(svc.OfficerSteps, domain.OfficerStep(of))
	}

	return svc, nil
}

// resolveDepartment accepts an object, a bare string, or nothing. A bare
// string is both the display name and the identifier the portal expects
// in apply links.
func resolveDepartment(raw json.RawMessage) (*domain.Department, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return nil, fmt.Errorf("decode department: %w", err)
		}
		if name == "" {
			return nil, nil
		}
		return &domain.Department{ID: name, NameEnglish: name}, nil
	}

	var dto departmentDTO
	if err := json.Unmarshal(trimmed, &dto); err != nil {
		return nil, fmt.Errorf("decode department: %w", err)
	}
	return &domain.Department{
		ID:          firstNonEmpty(dto.MongoID, dto.ID),
		Code:        dto.Code,
		NameEnglish: dto.NameEnglish,
		NameHindi:   dto.NameHindi,
	}, nil
}

// decodeServices handles both response shapes for /chatbot/services:
// a bare array, or a {success, data} envelope. success=false is an error.
func decodeServices(data []byte) ([]domain.Service, error) {
	trimmed := bytes.TrimSpace(data)

	var dtos []serviceDTO
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return nil, fmt.Errorf("decode services: %w", err)
		}
	} else {
		var env struct {
			Success *bool        `json:"success"`
			Message string       `json:"message"`
			Data    []serviceDTO `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode services: %w", err)
		}
		if env.Success != nil && !*env.Success {
			return nil, fmt.Errorf("list services: %s: %w", env.Message, domain.ErrBackendStatus)
		}
		dtos = env.Data
	}

	services := make([]domain.Service, 0, len(dtos))
	for _, dto := range dtos {
		svc, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return services, nil
}

// apiTime parses the backend's ISO-8601 timestamps. Null, empty, and
// unparseable values decode to the zero time rather than failing.
type apiTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil //nolint:nilerr // tolerate unexpected shapes, zero time
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

func (t *apiTime) ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return &t.Time
}

type timelineDTO struct {
	ApplicationID           string            `json:"applicationId"`
	ApplicantName           string            `json:"applicantName"`
	ApplicantMobile         string            `json:"applicantMobile"`
	ServiceName             string            `json:"serviceName"`
	ServiceType             string            `json:"serviceType"`
	Status                  string            `json:"status"`
	CurrentStage            string            `json:"currentStage"`
	CertificateReady        bool              `json:"certificateReady"`
	SubmittedDate           *apiTime          `json:"submittedDate"`
	CompletedDate           *apiTime          `json:"completedDate"`
	EstimatedCompletionDate *apiTime          `json:"estimatedCompletionDate"`
	Timeline                []timelineStepDTO `json:"timeline"`
	Metadata                struct {
		CompletedSteps int `json:"completedSteps"`
		TotalSteps     int `json:"totalSteps"`
	} `json:"metadata"`
}

type timelineStepDTO struct {
	StageName          string   `json:"stageName"`
	StageNameHindi     string   `json:"stageNameHindi"`
	Office             string   `json:"office"`
	OfficerName        string   `json:"officerName"`
	OfficerDesignation string   `json:"officerDesignation"`
	ActionTaken        string   `json:"actionTaken"`
	Remarks            string   `json:"remarks"`
	Timestamp          *apiTime `json:"timestamp"`
	Completed          bool     `json:"completed"`
	IsMilestone        bool     `json:"isMilestone"`
}

func (d timelineDTO) toDomain() domain.Timeline {
	tl := domain.Timeline{
		ApplicationID:    d.ApplicationID,
		ApplicantName:    d.ApplicantName,
		ApplicantMobile:  d.ApplicantMobile,
		ServiceName:      firstNonEmpty(d.ServiceName, d.ServiceType),
		Status:           d.Status,
		CurrentStage:     d.CurrentStage,
		CertificateReady: d.CertificateReady,
		SubmittedAt:      d.SubmittedDate.ptr(),
		CompletedAt:      d.CompletedDate.ptr(),
		EstimatedAt:      d.EstimatedCompletionDate.ptr(),
		CompletedSteps:   d.Metadata.CompletedSteps,
		TotalSteps:       d.Metadata.TotalSteps,
	}

	for _, step := range d.Timeline {
		tl.Steps = append(tl.Steps, domain.TimelineStep{
			StageName:          step.StageName,
			StageNameHindi:     step.StageNameHindi,
			Office:             step.Office,
			OfficerName:        step.OfficerName,
			OfficerDesignation: step.OfficerDesignation,
			Action:             step.ActionTaken,
			Remarks:            step.Remarks,
			Timestamp:          step.Timestamp.ptr(),
			Completed:          step.Completed,
			Milestone:          step.IsMilestone,
		})
	}

	return tl
}

type certificateDTO struct {
	ApplicationID        string   `json:"applicationId"`
	CertificateNumber    string   `json:"certificateNumber"`
	CertificateType      string   `json:"certificateType"`
	CertificateTypeHindi string   `json:"certificateTypeHindi"`
	ServiceName          string   `json:"serviceName"`
	ApplicantName        string   `json:"applicantName"`
	ApplicantMobile      string   `json:"applicantMobile"`
	IssuedDate           *apiTime `json:"issuedDate"`
	PublishedDate        *apiTime `json:"publishedDate"`
	ValidFrom            *apiTime `json:"validFrom"`
	ValidUntil           *apiTime `json:"validUntil"`
	PreviewURL           string   `json:"previewUrl"`
	DownloadURL          string   `json:"downloadUrl"`
}

func (d certificateDTO) toDomain() domain.Certificate {
	return domain.Certificate{
		ApplicationID:     d.ApplicationID,
		CertificateNumber: d.CertificateNumber,
		ServiceName:       firstNonEmpty(d.CertificateType, d.ServiceName),
		ServiceNameHindi:  d.CertificateTypeHindi,
		ApplicantName:     d.ApplicantName,
		ApplicantMobile:   d.ApplicantMobile,
		IssuedAt:          d.IssuedDate.ptr(),
		PublishedAt:       d.PublishedDate.ptr(),
		ValidFrom:         d.ValidFrom.ptr(),
		ValidUntil:        d.ValidUntil.ptr(),
		PreviewURL:        d.PreviewURL,
		DownloadURL:       d.DownloadURL,
	}
}

type applicationSummaryDTO struct {
	ApplicationID    string   `json:"applicationId"`
	ServiceName      string   `json:"serviceName"`
	ServiceType      string   `json:"serviceType"`
	Status           string   `json:"status"`
	SubmittedDate    *apiTime `json:"submittedDate"`
	CompletedDate    *apiTime `json:"completedDate"`
	CertificateReady bool     `json:"certificateReady"`
}

func (d applicationSummaryDTO) toDomain() domain.ApplicationSummary {
	return domain.ApplicationSummary{
		ApplicationID:    d.ApplicationID,
		ServiceName:      firstNonEmpty(d.ServiceName, d.ServiceType),
		Status:           d.Status,
		SubmittedAt:      d.SubmittedDate.ptr(),
		CompletedAt:      d.CompletedDate.ptr(),
		CertificateReady: d.CertificateReady,
	}
}

type statsDTO struct {
	Total             int      `json:"total"`
	Completed         int      `json:"completed"`
	InProgress        int      `json:"inProgress"`
	Rejected          int      `json:"rejected"`
	Published         int      `json:"published"`
	TodayApplications int      `json:"todayApplications"`
	CompletionRate    string   `json:"completionRate"`
	Timestamp         *apiTime `json:"timestamp"`
}

func (d statsDTO) toDomain() domain.Stats {
	return domain.Stats{
		Total:             d.Total,
		Completed:         d.Completed,
		InProgress:        d.InProgress,
		Rejected:          d.Rejected,
		Published:         d.Published,
		TodayApplications: d.TodayApplications,
		CompletionRate:    d.CompletionRate,
		GeneratedAt:       d.Timestamp.ptr(),
	}
}

// extractMessage pulls the "message" field out of a JSON error body.
func extractMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Message != "" {
		return parsed.Message
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
