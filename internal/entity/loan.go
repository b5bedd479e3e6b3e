package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finsarthi/leads-api/internal/workflow"
)

// LoanApplication follows the same sales-qualification workflow as
// insurance leads.
type LoanApplication struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           *string         `json:"email,omitempty"`
	LoanType        string          `json:"loan_type"`
	Amount          *float64        `json:"amount,omitempty"`
	TenureMonths    *int            `json:"tenure_months,omitempty"`
	MonthlyIncome   *float64        `json:"monthly_income,omitempty"`
	EmploymentType  *string         `json:"employment_type,omitempty"`
	City            *string         `json:"city,omitempty"`
	Status          workflow.Status `json:"status"`
	Priority        *string         `json:"priority,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	Source          *string         `json:"source,omitempty"`
	ContactedAt     *time.Time      `json:"contacted_at,omitempty"`
	ConvertedAt     *time.Time      `json:"converted_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
