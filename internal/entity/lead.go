package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finsarthi/leads-api/internal/workflow"
)

// InsuranceLead is a prospective customer's submitted interest in an
// insurance product. Leads are never hard-deleted; their lifecycle is the
// status field.
type InsuranceLead struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           *string         `json:"email,omitempty"`
	InsuranceType   string          `json:"insurance_type"`
	Category        *string         `json:"category,omitempty"`
	City            *string         `json:"city,omitempty"`
	State           *string         `json:"state,omitempty"`
	SumAssured      *float64        `json:"sum_assured,omitempty"`
	PremiumBudget   *float64        `json:"premium_budget,omitempty"`
	Status          workflow.Status `json:"status"`
	Priority        *string         `json:"priority,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	Source          *string         `json:"source,omitempty"`
	UTMSource       *string         `json:"utm_source,omitempty"`
	UTMMedium       *string         `json:"utm_medium,omitempty"`
	UTMCampaign     *string         `json:"utm_campaign,omitempty"`
	ContactedAt     *time.Time      `json:"contacted_at,omitempty"`
	ConvertedAt     *time.Time      `json:"converted_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
