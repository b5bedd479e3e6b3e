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
	// ErrApplicationNotFound is returned when no labour application matches.
	ErrApplicationNotFound = errors.New("labour application not found")
	// ErrProfileNotFound is returned when no labour profile matches.
	ErrProfileNotFound = errors.New("labour profile not found")
)

// LabourRepository describes persistence operations for the labour marketplace.
type LabourRepository interface {
	CreateApplication(ctx context.Context, app *entity.LabourApplication) error
	ListApplications(ctx context.Context, filter dto.LabourListFilter) ([]entity.LabourApplication, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*entity.LabourApplication, error)
	Approve(ctx context.Context, id uuid.UUID, rates []entity.LabourServiceRate) (*entity.LabourProfile, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.LabourApplication, error)
	ListProfiles(ctx context.Context) ([]entity.LabourProfile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

// PGXLabourRepository implements LabourRepository using pgx.
type PGXLabourRepository struct {
	pool pgxPool
}

// NewPGXLabourRepository wires a pgx backed repository.
func NewPGXLabourRepository(pool *pgxpool.Pool) *PGXLabourRepository {
	return &PGXLabourRepository{pool: pool}
}

const labourColumns = `
        id, name, phone, email, city, skill_category, experience_years,
        expected_daily_rate, services, status, priority, notes,
        rejection_reason, reviewed_date, created_at, updated_at`

// CreateApplication inserts a new application in status pending.
func (r *PGXLabourRepository) CreateApplication(ctx context.Context, app *entity.LabourApplication) error {
	if app == nil {
		return fmt.Errorf("application payload is nil")
	}

	query := `
        INSERT INTO labour_applications (
            name, phone, email, city, skill_category, experience_years,
            expected_daily_rate, services, status, priority, notes
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, status, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		app.Name,
		app.Phone,
		stringOrNil(app.Email),
		stringOrNil(app.City),
		app.SkillCategory,
		app.ExperienceYears,
		app.ExpectedDailyRate,
		app.Services,
		string(workflow.StatusPending),
		stringOrNil(app.Priority),
		stringOrNil(app.Notes),
	).Scan(&app.ID, &app.Status, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert labour application: %w", err)
	}

	return nil
}

// ListApplications retrieves applications matching the filter, newest first.
func (r *PGXLabourRepository) ListApplications(ctx context.Context, filter dto.LabourListFilter) ([]entity.LabourApplication, error) {
	query := strings.Builder{}
	query.WriteString("SELECT" + labourColumns + " FROM labour_applications")

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
	if filter.Skill != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(skill_category) = LOWER($%d)", idx))
		args = append(args, filter.Skill)
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
		return nil, fmt.Errorf("list labour applications: %w", err)
	}
	defer rows.Close()

	var apps []entity.LabourApplication
	for rows.Next() {
		app, err := scanLabourApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan labour application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labour applications: %w", err)
	}

	return apps, nil
}

// GetApplication fetches a single application.
func (r *PGXLabourRepository) GetApplication(ctx context.Context, id uuid.UUID) (*entity.LabourApplication, error) {
	row := r.pool.QueryRow(ctx, "SELECT"+labourColumns+" FROM labour_applications WHERE id = $1", id)
	app, err := scanLabourApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("fetch labour application: %w", err)
	}
	return app, nil
}

// Approve flips a pending application to approved and provisions the
// marketplace profile plus its service rates in one transaction. Either
// everything lands or nothing does.
func (r *PGXLabourRepository) Approve(ctx context.Context, id uuid.UUID, rates []entity.LabourServiceRate) (*entity.LabourProfile, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin approval tx: %w", err)
	}
	defer tx.Rollback(ctx)

	statusCAS := `
        UPDATE labour_applications SET
            status = $2, reviewed_date = NOW(), updated_at = NOW()
        WHERE id = $1 AND status = $3
        RETURNING name, phone, city, skill_category`

	var (
		name  string
		phone string
		city  *string
		skill string
	)
	err = tx.QueryRow(ctx, statusCAS, id, string(workflow.StatusApproved), string(workflow.StatusPending)).
		Scan(&name, &phone, &city, &skill)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var current string
			probeErr := r.pool.QueryRow(ctx, `SELECT status FROM labour_applications WHERE id = $1`, id).Scan(&current)
			if errors.Is(probeErr, pgx.ErrNoRows) {
				return nil, ErrApplicationNotFound
			}
			if probeErr != nil {
				return nil, fmt.Errorf("probe labour application status: %w", probeErr)
			}
			return nil, fmt.Errorf("%w: application is %q, expected %q", ErrStatusConflict, current, workflow.StatusPending)
		}
		return nil, fmt.Errorf("approve labour application: %w", err)
	}

	profile := entity.LabourProfile{
		ApplicationID: id,
		Name:          name,
		Phone:         phone,
		City:          city,
		SkillCategory: skill,
		Active:        true,
	}
	err = tx.QueryRow(ctx, `
        INSERT INTO labour_profiles (application_id, name, phone, city, skill_category, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`,
		id, name, phone, city, skill, true,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert labour profile: %w", err)
	}

	for _, rate := range rates {
		_, err := tx.Exec(ctx, `
            INSERT INTO labour_services (profile_id, service, daily_rate)
            VALUES ($1, $2, $3)`,
			profile.ID, rate.Service, rate.DailyRate,
		)
		if err != nil {
			return nil, fmt.Errorf("insert labour service %q: %w", rate.Service, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit approval tx: %w", err)
	}

	return &profile, nil
}

// Reject flips a pending application to rejected with the mandatory reason.
func (r *PGXLabourRepository) Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.LabourApplication, error) {
	query := `
        UPDATE labour_applications SET
            status = $2, rejection_reason = $3, reviewed_date = NOW(), updated_at = NOW()
        WHERE id = $1 AND status = $4
        RETURNING` + labourColumns

	row := r.pool.QueryRow(ctx, query, id, string(workflow.StatusRejected), reason, string(workflow.StatusPending))
	app, err := scanLabourApplication(row)
	if err == nil {
		return app, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("reject labour application: %w", err)
	}

	var current string
	probeErr := r.pool.QueryRow(ctx, `SELECT status FROM labour_applications WHERE id = $1`, id).Scan(&current)
	if errors.Is(probeErr, pgx.ErrNoRows) {
		return nil, ErrApplicationNotFound
	}
	if probeErr != nil {
		return nil, fmt.Errorf("probe labour application status: %w", probeErr)
	}
	return nil, fmt.Errorf("%w: application is %q, expected %q", ErrStatusConflict, current, workflow.StatusPending)
}

// ListProfiles returns all marketplace profiles, newest first.
func (r *PGXLabourRepository) ListProfiles(ctx context.Context) ([]entity.LabourProfile, error) {
	query := `
        SELECT id, application_id, name, phone, city, skill_category, active, created_at, updated_at
        FROM labour_profiles ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list labour profiles: %w", err)
	}
	defer rows.Close()

	var profiles []entity.LabourProfile
	for rows.Next() {
		var p entity.LabourProfile
		err := rows.Scan(&p.ID, &p.ApplicationID, &p.Name, &p.Phone, &p.City, &p.SkillCategory, &p.Active, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan labour profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labour profiles: %w", err)
	}

	return profiles, nil
}

// DeleteProfile removes a profile and its service rows. The application row
// stays for the audit trail.
func (r *PGXLabourRepository) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin profile delete tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM labour_services WHERE profile_id = $1`, id); err != nil {
		return fmt.Errorf("delete labour services: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM labour_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete labour profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit profile delete tx: %w", err)
	}
	return nil
}

func scanLabourApplication(row pgx.Row) (*entity.LabourApplication, error) {
	var (
		app    entity.LabourApplication
		status string
	)
	err := row.Scan(
		&app.ID,
		&app.Name,
		&app.Phone,
		&app.Email,
		&app.City,
		&app.SkillCategory,
		&app.ExperienceYears,
		&app.ExpectedDailyRate,
		&app.Services,
		&status,
		&app.Priority,
		&app.Notes,
		&app.RejectionReason,
		&app.ReviewedDate,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.Status = workflow.Status(status)
	return &app, nil
}
