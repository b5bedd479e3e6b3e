package dto

// SubmitLabourApplicationRequest is the public labour-marketplace form payload.
type SubmitLabourApplicationRequest struct {
	Name              string   `json:"name"`
	Phone             string   `json:"phone"`
	Email             string   `json:"email"`
	City              string   `json:"city"`
	SkillCategory     string   `json:"skill_category"`
	ExperienceYears   *int     `json:"experience_years,omitempty"`
	ExpectedDailyRate *float64 `json:"expected_daily_rate,omitempty"`
	Services          []string `json:"services"`
	Notes             string   `json:"notes"`
}

// LabourListFilter contains query parameters for the admin application list.
type LabourListFilter struct {
	Status  string
	Skill   string
	City    string
	Page    int
	PerPage int
}

// RejectRequest carries the mandatory reason for a rejection.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ApprovalResult reports what the transactional approval provisioned.
type ApprovalResult struct {
	ApplicationID string `json:"application_id"`
	ProfileID     string `json:"profile_id"`
	ServicesAdded int    `json:"services_added"`
}
