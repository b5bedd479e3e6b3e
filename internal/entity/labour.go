package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finsarthi/leads-api/internal/workflow"
)

// LabourApplication is a worker's request to be listed on the labour
// marketplace. Review is binary: approved or rejected.
type LabourApplication struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Phone             string          `json:"phone"`
	Email             *string         `json:"email,omitempty"`
	City              *string         `json:"city,omitempty"`
	SkillCategory     string          `json:"skill_category"`
	ExperienceYears   *int            `json:"experience_years,omitempty"`
	ExpectedDailyRate *float64        `json:"expected_daily_rate,omitempty"`
	Services          []string        `json:"services"`
	Status            workflow.Status `json:"status"`
	Priority          *string         `json:"priority,omitempty"`
	Notes             *string         `json:"notes,omitempty"`
	RejectionReason   *string         `json:"rejection_reason,omitempty"`
	ReviewedDate      *time.Time      `json:"reviewed_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LabourProfile is the marketplace projection created from an approved
// application. Unlike applications it may be deleted independently.
type LabourProfile struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	City          *string   `json:"city,omitempty"`
	SkillCategory string    `json:"skill_category"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LabourServiceRate is one offered service with its default daily rate,
// provisioned alongside the profile on approval.
type LabourServiceRate struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	Service   string    `json:"service"`
	DailyRate float64   `json:"daily_rate"`
	CreatedAt time.Time `json:"created_at"`
}
