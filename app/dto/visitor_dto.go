package dto

// ValidateVisitorRequest represents the kiosk pre-check payload.
// BirthYear is a pointer so presence is what is validated; any integer value,
// zero included, is accepted.
type ValidateVisitorRequest struct {
	NationalID string `json:"tc_kimlik" validate:"required,len=11,numeric" example:"11111111111"`
	FirstName  string `json:"first_name" validate:"required" example:"Ada"`
	LastName   string `json:"last_name" validate:"required" example:"Lovelace"`
	BirthYear  *int   `json:"birth_year" validate:"required" example:"1990"`
}

// CreateVisitorRequest represents the intake payload
type CreateVisitorRequest struct {
	NationalID     string `json:"tc_kimlik" validate:"required,len=11,numeric" example:"11111111111"`
	FirstName      string `json:"first_name" validate:"required" example:"Ada"`
	LastName       string `json:"last_name" validate:"required" example:"Lovelace"`
	BirthYear      *int   `json:"birth_year" validate:"required" example:"1990"`
	ReasonForVisit string `json:"reason_for_visit" validate:"required" example:"meeting"`
}

// VisitorResponse is the full visitor record as serialized on the wire.
// Field names and the textual visit_duration keep the historical format.
type VisitorResponse struct {
	ID             string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	NationalID     string  `json:"tc_kimlik" example:"11111111111"`
	FirstName      string  `json:"first_name" example:"Ada"`
	LastName       string  `json:"last_name" example:"Lovelace"`
	BirthYear      int     `json:"birth_year" example:"1990"`
	ReasonForVisit string  `json:"reason_for_visit" example:"meeting"`
	EntryTime      string  `json:"entry_time" example:"2024-01-15T10:30:00Z"`
	ExitTime       *string `json:"exit_time" example:"2024-01-15T11:15:00Z"`
	VisitDuration  *string `json:"visit_duration" example:"45 dakika"`
	IsActive       bool    `json:"is_active" example:"true"`
}

// VisitorMetricsResponse is the aggregate metrics payload for the staff dashboard
type VisitorMetricsResponse struct {
	VisitorsToday               int64 `json:"visitorsToday" example:"12"`
	ActiveVisitors              int64 `json:"activeVisitors" example:"3"`
	AverageVisitDurationMinutes int   `json:"averageVisitDurationMinutes" example:"37"`
}
