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

var (
	// ErrLeadNotFound is returned when no lead matches the identifier.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrStatusConflict means the row's current status no longer matches the
	// expected one; a concurrent operator got there first.
	ErrStatusConflict = errors.New("status changed concurrently")
)

// TransitionMutation carries the optional fields written alongside a status change.
type TransitionMutation struct {
	Reason   *string
	Priority *string
}

// InsuranceLeadsRepository describes persistence operations for insurance leads.
type InsuranceLeadsRepository interface {
	Create(ctx context.Context, lead *entity.InsuranceLead) error
	List(ctx context.Context, filter dto.LeadListFilter) ([]entity.InsuranceLead, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InsuranceLead, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut TransitionMutation) (*entity.InsuranceLead, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// PGXInsuranceLeadsRepository implements InsuranceLeadsRepository using pgx.
type PGXInsuranceLeadsRepository struct {
	pool pgxPool
}

// NewPGXInsuranceLeadsRepository wires a pgx backed repository.
func NewPGXInsuranceLeadsRepository(pool *pgxpool.Pool) *PGXInsuranceLeadsRepository {
	return &PGXInsuranceLeadsRepository{pool: pool}
}

const leadColumns = `
        id, name, phone, email, insurance_type, category, city, state,
        sum_assured, premium_budget, status, priority, notes,
        rejection_reason, source, utm_source, utm_medium, utm_campaign,
        contacted_at, converted_at, created_at, updated_at`

// Create inserts a new lead in status pending.
func (r *PGXInsuranceLeadsRepository) Create(ctx context.Context, lead *entity.InsuranceLead) error {
	if lead == nil {
		return fmt.Errorf("lead payload is nil")
	}

	query := `
        INSERT INTO insurance_leads (
            name, phone, email, insurance_type, category, city, state,
            sum_assured, premium_budget, status, priority, notes, source,
            utm_source, utm_medium, utm_campaign
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id, status, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		lead.Name,
		lead.Phone,
		stringOrNil(lead.Email),
		lead.InsuranceType,
		stringOrNil(lead.Category),
		stringOrNil(lead.City),
		stringOrNil(lead.State),
		lead.SumAssured,
		lead.PremiumBudget,
		string(workflow.StatusPending),
		stringOrNil(lead.Priority),
		stringOrNil(lead.Notes),
		stringOrNil(lead.Source),
		stringOrNil(lead.UTMSource),
		stringOrNil(lead.UTMMedium),
		stringOrNil(lead.UTMCampaign),
	).Scan(&lead.ID, &lead.Status, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

// List retrieves leads matching the provided filter, newest first.
func (r *PGXInsuranceLeadsRepository) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.InsuranceLead, error) {
	query := strings.Builder{}
	query.WriteString("SELECT" + leadColumns + " FROM insurance_leads")

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Q != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Q)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d)", idx, idx+1))
		args = append(args, pattern, pattern)
		idx += 2
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.Type != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(insurance_type) = LOWER($%d)", idx))
		args = append(args, filter.Type)
		idx++
	}
	if filter.City != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(city) = LOWER($%d)", idx))
		args = append(args, filter.City)
		idx++
	}
	if filter.Since != nil {
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", idx))
		args = append(args, *filter.Since)
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
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// GetByID fetches a single lead.
func (r *PGXInsuranceLeadsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InsuranceLead, error) {
	row := r.pool.QueryRow(ctx, "SELECT"+leadColumns+" FROM insurance_leads WHERE id = $1", id)
	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("fetch lead: %w", err)
	}
	return lead, nil
}

// TransitionStatus applies a guarded status change. The WHERE clause doubles
// as a compare-and-swap: if the row's status moved since the caller read it,
// zero rows match and the update is lost-update-safe.
func (r *PGXInsuranceLeadsRepository) TransitionStatus(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut TransitionMutation) (*entity.InsuranceLead, error) {
	query := `
        UPDATE insurance_leads SET
            status = $3,
            rejection_reason = COALESCE($4, rejection_reason),
            priority = COALESCE($5, priority),
            contacted_at = CASE WHEN $3 = 'contacted' THEN NOW() ELSE contacted_at END,
            converted_at = CASE WHEN $3 = 'converted' THEN NOW() ELSE converted_at END,
            updated_at = NOW()
        WHERE id = $1 AND status = $2
        RETURNING` + leadColumns

	row := r.pool.QueryRow(ctx, query, id, string(expected), string(target), mut.Reason, mut.Priority)
	lead, err := scanLead(row)
	if err == nil {
		return lead, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transition lead status: %w", err)
	}

	// Distinguish a missing row from a concurrent status change.
	var current string
	probeErr := r.pool.QueryRow(ctx, `SELECT status FROM insurance_leads WHERE id = $1`, id).Scan(&current)
	if errors.Is(probeErr, pgx.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if probeErr != nil {
		return nil, fmt.Errorf("probe lead status: %w", probeErr)
	}
	return nil, fmt.Errorf("%w: lead is %q, expected %q", ErrStatusConflict, current, expected)
}

// CountByStatus returns the dashboard counters.
func (r *PGXInsuranceLeadsRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM insurance_leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan lead count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lead counts: %w", err)
	}
	return counts, nil
}

func scanLead(row pgx.Row) (*entity.InsuranceLead, error) {
	var (
		lead   entity.InsuranceLead
		status string
	)
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Phone,
		&lead.Email,
		&lead.InsuranceType,
		&lead.Category,
		&lead.City,
		&lead.State,
		&lead.SumAssured,
		&lead.PremiumBudget,
		&status,
		&lead.Priority,
		&lead.Notes,
		&lead.RejectionReason,
		&lead.Source,
		&lead.UTMSource,
		&lead.UTMMedium,
		&lead.UTMCampaign,
		&lead.ContactedAt,
		&lead.ConvertedAt,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	lead.Status = workflow.Status(status)
	return &lead, nil
}

func scanLeads(rows pgx.Rows) ([]entity.InsuranceLead, error) {
	var leads []entity.InsuranceLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
