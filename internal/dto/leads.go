package dto

import "time"

// SubmitLeadRequest is the public insurance-lead form payload. Numeric
// fields arrive as plain numbers from the form layer; contact fields are
// normalized server-side.
type SubmitLeadRequest struct {
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	InsuranceType string   `json:"insurance_type"`
	Category      string   `json:"category"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	SumAssured    *float64 `json:"sum_assured,omitempty"`
	PremiumBudget *float64 `json:"premium_budget,omitempty"`
	Notes         string   `json:"notes"`
	Source        string   `json:"source"`
	UTMSource     string   `json:"utm_source"`
	UTMMedium     string   `json:"utm_medium"`
	UTMCampaign   string   `json:"utm_campaign"`
}

// TransitionRequest drives a status change on a lead or application.
type TransitionRequest struct {
	Status   string `json:"status"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// LeadListFilter contains query parameters for admin list endpoints.
type LeadListFilter struct {
	Q       string
	Status  string
	Type    string
	City    string
	Since   *time.Time
	Page    int
	PerPage int
}
