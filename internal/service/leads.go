package service

import (
	"context"
	"errors"
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

// ErrInvalidInput marks request payload problems the caller can fix.
var ErrInvalidInput = errors.New("invalid input")

const notifyTimeout = 10 * time.Second

// LeadService orchestrates intake and qualification of insurance leads.
type LeadService struct {
	repo     repository.InsuranceLeadsRepository
	contacts *ContactNormalizer
	metrics  *metrics.Metrics
	notifier Notifier
	logger   *zap.Logger
}

// NewLeadService constructs a LeadService.
func NewLeadService(repo repository.InsuranceLeadsRepository, contacts *ContactNormalizer, m *metrics.Metrics, notifier Notifier, logger *zap.Logger) *LeadService {
	return &LeadService{repo: repo, contacts: contacts, metrics: m, notifier: notifier, logger: logger}
}

// Submit validates and stores a public form submission. New leads always
// start in pending.
func (s *LeadService) Submit(ctx context.Context, req dto.SubmitLeadRequest) (*entity.InsuranceLead, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	phone := s.contacts.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	insuranceType := strings.ToLower(strings.TrimSpace(req.InsuranceType))
	if insuranceType == "" {
		return nil, fmt.Errorf("%w: insurance_type is required", ErrInvalidInput)
	}

	lead := &entity.InsuranceLead{
		Name:          name,
		Phone:         phone,
		Email:         optional(s.contacts.NormalizeEmail(req.Email)),
		InsuranceType: insuranceType,
		Category:      optional(strings.TrimSpace(req.Category)),
		City:          optional(strings.TrimSpace(req.City)),
		State:         optional(strings.TrimSpace(req.State)),
		SumAssured:    req.SumAssured,
		PremiumBudget: req.PremiumBudget,
		Notes:         optional(strings.TrimSpace(req.Notes)),
		Source:        optional(strings.TrimSpace(req.Source)),
		UTMSource:     optional(strings.TrimSpace(req.UTMSource)),
		UTMMedium:     optional(strings.TrimSpace(req.UTMMedium)),
		UTMCampaign:   optional(strings.TrimSpace(req.UTMCampaign)),
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.metrics.Submissions.WithLabelValues("insurance_lead").Inc()
	s.logger.Info("lead submitted",
		zap.String("lead_id", lead.ID.String()),
		zap.String("insurance_type", lead.InsuranceType),
	)
	return lead, nil
}

// List returns leads for the admin dashboard.
func (s *LeadService) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.InsuranceLead, error) {
	if filter.Status != "" && !knownStatus(workflow.KindLead, filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.repo.List(ctx, filter)
}

// Get fetches a single lead.
func (s *LeadService) Get(ctx context.Context, id string) (*entity.InsuranceLead, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lead id", ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, leadID)
}

// Transition moves a lead through the qualification workflow. The guard runs
// here against the freshly read status; the repository re-checks it with a
// compare-and-swap so concurrent operators cannot double-apply a move.
func (s *LeadService) Transition(ctx context.Context, id string, req dto.TransitionRequest, operatorID string) (*entity.InsuranceLead, error) {
	leadID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lead id", ErrInvalidInput)
	}
	target := workflow.Status(strings.TrimSpace(req.Status))

	current, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanTransition(workflow.KindLead, current.Status, target, strings.TrimSpace(req.Reason)); err != nil {
		return nil, err
	}

	lead, err := s.repo.TransitionStatus(ctx, leadID, current.Status, target, TransitionMutationFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.metrics.Transitions.WithLabelValues("insurance_lead", string(target)).Inc()
	s.notifyAsync(TransitionEvent{
		Entity:     "insurance_lead",
		ID:         lead.ID.String(),
		FromStatus: string(current.Status),
		ToStatus:   string(target),
		OperatorID: operatorID,
		OccurredAt: lead.UpdatedAt.UTC().Format(time.RFC3339),
	})
	return lead, nil
}

// CountByStatus returns the dashboard counters.
func (s *LeadService) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

// notifyAsync delivers the webhook off the request path. The transition has
// already committed, so delivery uses a fresh context.
func (s *LeadService) notifyAsync(event TransitionEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		_ = s.notifier.NotifyTransition(ctx, event)
	}()
}

// TransitionMutationFromRequest lifts the optional mutation fields.
func TransitionMutationFromRequest(req dto.TransitionRequest) repository.TransitionMutation {
	return repository.TransitionMutation{
		Reason:   optional(strings.TrimSpace(req.Reason)),
		Priority: optional(strings.TrimSpace(req.Priority)),
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func knownStatus(kind workflow.Kind, status string) bool {
	for _, s := range workflow.Statuses(kind) {
		if string(s) == status {
			return true
		}
	}
	return false
}
