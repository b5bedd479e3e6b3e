package dto

// SubmitLoanApplicationRequest is the public loan-enquiry form payload.
type SubmitLoanApplicationRequest struct {
	Name           string   `json:"name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	LoanType       string   `json:"loan_type"`
	Amount         *float64 `json:"amount,omitempty"`
	TenureMonths   *int     `json:"tenure_months,omitempty"`
	MonthlyIncome  *float64 `json:"monthly_income,omitempty"`
	EmploymentType string   `json:"employment_type"`
	City           string   `json:"city"`
	Notes          string   `json:"notes"`
	Source         string   `json:"source"`
}

// LoanListFilter contains query parameters for the admin loan list.
type LoanListFilter struct {
	Status  string
	Type    string
	City    string
	Page    int
	PerPage int
}
