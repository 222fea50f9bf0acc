package domain

// Department is a government department offering services.
// Legacy catalog entries carry a bare string instead of an object;
// the decode boundary resolves both shapes into this struct.
type Department struct {
	ID          string
	Code        string
	NameEnglish string
	NameHindi   string
}

// Document is one required or optional document for a service application.
type Document struct {
	NameEnglish string
	NameHindi   string
	Required    bool
	Notes       []string
}

// OfficerStep is one step of the processing flow for a service.
type OfficerStep struct {
	Office      string
	Designation string
}

// Service is one advertisable government-service record from the catalog.
// It is immutable input to the matching core: the scorer and ranker never
// mutate it.
type Service struct {
	ID          string
	Slug        string
	NameEnglish string
	NameHindi   string
	Department  *Department

	// Formatting-only metadata, opaque to the matching core.
	Charge              float64
	DeliveryTimeSeconds int
	HasCertificate      bool
	Documents           []Document
	OfficerSteps        []OfficerStep
}
