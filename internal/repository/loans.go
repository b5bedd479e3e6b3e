package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/workflow"
)

// ErrLoanNotFound is returned when no loan application matches the identifier.
var ErrLoanNotFound = errors.New("loan application not found")

// LoansRepository describes persistence operations for loan applications.
type LoansRepository interface {
	Create(ctx context.Context, loan *entity.LoanApplication) error
	List(ctx context.Context, filter dto.LoanListFilter) ([]entity.LoanApplication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LoanApplication, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut TransitionMutation) (*entity.LoanApplication, error)
}

// PGXLoansRepository implements LoansRepository using pgx.
type PGXLoansRepository struct {
	pool pgxPool
}

// NewPGXLoansRepository wires a pgx backed repository.
func NewPGXLoansRepository(pool *pgxpool.Pool) *PGXLoansRepository {
	return &PGXLoansRepository{pool: pool}
}

const loanColumns = `
        id, name, phone, email, loan_type, amount, tenure_months,
        monthly_income, employment_type, city, status, priority, notes,
        rejection_reason, source, contacted_at, converted_at,
        created_at, updated_at`

// Create inserts a new loan application in status pending.
func (r *PGXLoansRepository) Create(ctx context.Context, loan *entity.LoanApplication) error {
	if loan == nil {
		return fmt.Errorf("loan payload is nil")
	}

	query := `
        INSERT INTO loan_applications (
            name, phone, email, loan_type, amount, tenure_months,
            monthly_income, employment_type, city, status, priority, notes, source
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, status, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		loan.Name,
		loan.Phone,
		stringOrNil(loan.Email),
		loan.LoanType,
		loan.Amount,
		loan.TenureMonths,
		loan.MonthlyIncome,
		stringOrNil(loan.EmploymentType),
		stringOrNil(loan.City),
		string(workflow.StatusPending),
		stringOrNil(loan.Priority),
		stringOrNil(loan.Notes),
		stringOrNil(loan.Source),
	).Scan(&loan.ID, &loan.Status, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert loan application: %w", err)
	}

	return nil
}

// List retrieves loan applications matching the filter, newest first.
func (r *PGXLoansRepository) List(ctx context.Context, filter dto.LoanListFilter) ([]entity.LoanApplication, error) {
	query := strings.Builder{}
	query.WriteString("SELECT" + loanColumns + " FROM loan_applications")

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.Type != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(loan_type) = LOWER($%d)", idx))
		args = append(args, filter.Type)
		idx++
	}
	if filter.City != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(city) = LOWER($%d)", idx))
		args = append(args, filter.City)
		idx++
	}

	if len(clauses) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(clauses, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1))
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list loan applications: %w", err)
	}
	defer rows.Close()

	var loans []entity.LoanApplication
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan application: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan applications: %w", err)
	}

	return loans, nil
}

// GetByID fetches a single loan application.
func (r *PGXLoansRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LoanApplication, error) {
	row := r.pool.QueryRow(ctx, "SELECT"+loanColumns+" FROM loan_applications WHERE id = $1", id)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("fetch loan application: %w", err)
	}
	return loan, nil
}

// TransitionStatus applies a guarded status change using the same
// compare-and-swap shape as the insurance lead repository.
func (r *PGXLoansRepository) TransitionStatus(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut TransitionMutation) (*entity.LoanApplication, error) {
	query := `
        UPDATE loan_applications SET
            status = $3,
            rejection_reason = COALESCE($4, rejection_reason),
            priority = COALESCE($5, priority),
            contacted_at = CASE WHEN $3 = 'contacted' THEN NOW() ELSE contacted_at END,
            converted_at = CASE WHEN $3 = 'converted' THEN NOW() ELSE converted_at END,
            updated_at = NOW()
        WHERE id = $1 AND status = $2
        RETURNING` + loanColumns

	row := r.pool.QueryRow(ctx, query, id, string(expected), string(target), mut.Reason, mut.Priority)
	loan, err := scanLoan(row)
	if err == nil {
		return loan, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transition loan status: %w", err)
	}

	var current string
	probeErr := r.pool.QueryRow(ctx, `SELECT status FROM loan_applications WHERE id = $1`, id).Scan(&current)
	if errors.Is(probeErr, pgx.ErrNoRows) {
		return nil, ErrLoanNotFound
	}
	if probeErr != nil {
		return nil, fmt.Errorf("probe loan status: %w", probeErr)
	}
	return nil, fmt.Errorf("%w: loan is %q, expected %q", ErrStatusConflict, current, expected)
}

func scanLoan(row pgx.Row) (*entity.LoanApplication, error) {
	var (
		loan   entity.LoanApplication
		status string
	)
	err := row.Scan(
		&loan.ID,
		&loan.Name,
		&loan.Phone,
		&loan.Email,
		&loan.LoanType,
		&loan.Amount,
		&loan.TenureMonths,
		&loan.MonthlyIncome,
		&loan.EmploymentType,
		&loan.City,
		&status,
		&loan.Priority,
		&loan.Notes,
		&loan.RejectionReason,
		&loan.Source,
		&loan.ContactedAt,
		&loan.ConvertedAt,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	loan.Status = workflow.Status(status)
	return &loan, nil
}
