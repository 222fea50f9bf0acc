package domain

import "time"

// TimelineStep is one processing step of an application timeline.
type TimelineStep struct {
	StageName          string
	StageNameHindi     string
	Office             string
	OfficerName        string
	OfficerDesignation string
	Action             string
	Remarks            string
	Timestamp          *time.Time
	Completed          bool
	Milestone          bool
}

// Timeline is the full tracking history of one application.
type Timeline struct {
	ApplicationID    string
	ApplicantName    string
	ApplicantMobile  string
	ServiceName      string
	Status           string
	CurrentStage     string
	CertificateReady bool
	SubmittedAt      *time.Time
	CompletedAt      *time.Time
	EstimatedAt      *time.Time
	CompletedSteps   int
	TotalSteps       int
	Steps            []TimelineStep
}

// Certificate holds download information for an issued certificate.
type Certificate struct {
	ApplicationID     string
	CertificateNumber string
	ServiceName       string
	ServiceNameHindi  string
	ApplicantName     string
	ApplicantMobile   string
	IssuedAt          *time.Time
	PublishedAt       *time.Time
	ValidFrom         *time.Time
	ValidUntil        *time.Time
	PreviewURL        string
	DownloadURL       string
}

// ApplicationSummary is one row of a mobile-number application search.
type ApplicationSummary struct {
	ApplicationID    string
	ServiceName      string
	Status           string
	SubmittedAt      *time.Time
	CompletedAt      *time.Time
	CertificateReady bool
}

// Stats aggregates system-wide application counters.
type Stats struct {
	Total             int
	Completed         int
	InProgress        int
	Rejected          int
	Published         int
	TodayApplications int
	CompletionRate    string
	GeneratedAt       *time.Time
}
