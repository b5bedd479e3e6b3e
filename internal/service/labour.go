package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/metrics"
	"github.com/finsarthi/leads-api/internal/repository"
	"github.com/finsarthi/leads-api/internal/workflow"
)

const defaultDailyRate = 600

// LabourService orchestrates the labour marketplace review flow.
type LabourService struct {
	repo     repository.LabourRepository
	contacts *ContactNormalizer
	metrics  *metrics.Metrics
	notifier Notifier
	logger   *zap.Logger
}

// NewLabourService constructs a LabourService.
func NewLabourService(repo repository.LabourRepository, contacts *ContactNormalizer, m *metrics.Metrics, notifier Notifier, logger *zap.Logger) *LabourService {
	return &LabourService{repo: repo, contacts: contacts, metrics: m, notifier: notifier, logger: logger}
}

// Submit validates and stores a public labour application.
func (s *LabourService) Submit(ctx context.Context, req dto.SubmitLabourApplicationRequest) (*entity.LabourApplication, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	phone := s.contacts.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	skill := strings.ToLower(strings.TrimSpace(req.SkillCategory))
	if skill == "" {
		return nil, fmt.Errorf("%w: skill_category is required", ErrInvalidInput)
	}

	services := make([]string, 0, len(req.Services))
	seen := make(map[string]bool, len(req.Services))
	for _, raw := range req.Services {
		service := strings.ToLower(strings.TrimSpace(raw))
		if service == "" || seen[service] {
			continue
		}
		seen[service] = true
		services = append(services, service)
	}

	app := &entity.LabourApplication{
		Name:              name,
		Phone:             phone,
		Email:             optional(s.contacts.NormalizeEmail(req.Email)),
		City:              optional(strings.TrimSpace(req.City)),
		SkillCategory:     skill,
		ExperienceYears:   req.ExperienceYears,
		ExpectedDailyRate: req.ExpectedDailyRate,
		Services:          services,
		Notes:             optional(strings.TrimSpace(req.Notes)),
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	s.metrics.Submissions.WithLabelValues("labour_application").Inc()
	s.logger.Info("labour application submitted",
		zap.String("application_id", app.ID.String()),
		zap.String("skill_category", app.SkillCategory),
	)
	return app, nil
}

// List returns applications for the admin dashboard.
func (s *LabourService) List(ctx context.Context, filter dto.LabourListFilter) ([]entity.LabourApplication, error) {
	if filter.Status != "" && !knownStatus(workflow.KindLabour, filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.repo.ListApplications(ctx, filter)
}

// Approve provisions the marketplace profile and one rate row per offered
// service, all inside a single transaction. The expected daily rate from
// the application applies to every service; a default covers applications
// that omitted it.
func (s *LabourService) Approve(ctx context.Context, id string, operatorID string) (*dto.ApprovalResult, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid application id", ErrInvalidInput)
	}

	app, err := s.repo.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanTransition(workflow.KindLabour, app.Status, workflow.StatusApproved, ""); err != nil {
		return nil, err
	}

	rate := float64(defaultDailyRate)
	if app.ExpectedDailyRate != nil && *app.ExpectedDailyRate > 0 {
		rate = *app.ExpectedDailyRate
	}
	rates := make([]entity.LabourServiceRate, 0, len(app.Services))
	for _, service := range app.Services {
		rates = append(rates, entity.LabourServiceRate{Service: service, DailyRate: rate})
	}

	profile, err := s.repo.Approve(ctx, appID, rates)
	if err != nil {
		return nil, err
	}

	s.metrics.Transitions.WithLabelValues("labour_application", string(workflow.StatusApproved)).Inc()
	s.notifyAsync(TransitionEvent{
		Entity:     "labour_application",
		ID:         appID.String(),
		FromStatus: string(workflow.StatusPending),
		ToStatus:   string(workflow.StatusApproved),
		OperatorID: operatorID,
		OccurredAt: profile.CreatedAt.UTC().Format(time.RFC3339),
	})
	s.logger.Info("labour application approved",
		zap.String("application_id", appID.String()),
		zap.String("profile_id", profile.ID.String()),
		zap.Int("services", len(rates)),
	)

	return &dto.ApprovalResult{
		ApplicationID: appID.String(),
		ProfileID:     profile.ID.String(),
		ServicesAdded: len(rates),
	}, nil
}

// Reject closes a pending application with the mandatory reason.
func (s *LabourService) Reject(ctx context.Context, id string, reason string, operatorID string) (*entity.LabourApplication, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid application id", ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)

	app, err := s.repo.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanTransition(workflow.KindLabour, app.Status, workflow.StatusRejected, reason); err != nil {
		return nil, err
	}

	rejected, err := s.repo.Reject(ctx, appID, reason)
	if err != nil {
		return nil, err
	}

	s.metrics.Transitions.WithLabelValues("labour_application", string(workflow.StatusRejected)).Inc()
	s.notifyAsync(TransitionEvent{
		Entity:     "labour_application",
		ID:         appID.String(),
		FromStatus: string(workflow.StatusPending),
		ToStatus:   string(workflow.StatusRejected),
		OperatorID: operatorID,
		OccurredAt: rejected.UpdatedAt.UTC().Format(time.RFC3339),
	})
	return rejected, nil
}

// ListProfiles returns the marketplace profiles.
func (s *LabourService) ListProfiles(ctx context.Context) ([]entity.LabourProfile, error) {
	return s.repo.ListProfiles(ctx)
}

// DeleteProfile removes a profile and its service rates. The application
// record stays behind.
func (s *LabourService) DeleteProfile(ctx context.Context, id string) error {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid profile id", ErrInvalidInput)
	}
	return s.repo.DeleteProfile(ctx, profileID)
}

func (s *LabourService) notifyAsync(event TransitionEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		_ = s.notifier.NotifyTransition(ctx, event)
	}()
}
