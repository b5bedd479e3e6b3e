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

// LoanService orchestrates loan enquiry intake and qualification. Loans
// share the insurance lead workflow.
type LoanService struct {
	repo     repository.LoansRepository
	contacts *ContactNormalizer
	metrics  *metrics.Metrics
	notifier Notifier
	logger   *zap.Logger
}

// NewLoanService constructs a LoanService.
func NewLoanService(repo repository.LoansRepository, contacts *ContactNormalizer, m *metrics.Metrics, notifier Notifier, logger *zap.Logger) *LoanService {
	return &LoanService{repo: repo, contacts: contacts, metrics: m, notifier: notifier, logger: logger}
}

// Submit validates and stores a public loan enquiry.
func (s *LoanService) Submit(ctx context.Context, req dto.SubmitLoanApplicationRequest) (*entity.LoanApplication, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	phone := s.contacts.NormalizePhone(req.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	loanType := strings.ToLower(strings.TrimSpace(req.LoanType))
	if loanType == "" {
		return nil, fmt.Errorf("%w: loan_type is required", ErrInvalidInput)
	}

	loan := &entity.LoanApplication{
		Name:           name,
		Phone:          phone,
		Email:          optional(s.contacts.NormalizeEmail(req.Email)),
		LoanType:       loanType,
		Amount:         req.Amount,
		TenureMonths:   req.TenureMonths,
		MonthlyIncome:  req.MonthlyIncome,
		EmploymentType: optional(strings.TrimSpace(req.EmploymentType)),
		City:           optional(strings.TrimSpace(req.City)),
		Notes:          optional(strings.TrimSpace(req.Notes)),
		Source:         optional(strings.TrimSpace(req.Source)),
	}

	if err := s.repo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.metrics.Submissions.WithLabelValues("loan_application").Inc()
	s.logger.Info("loan application submitted",
		zap.String("loan_id", loan.ID.String()),
		zap.String("loan_type", loan.LoanType),
	)
	return loan, nil
}

// List returns loan applications for the admin dashboard.
func (s *LoanService) List(ctx context.Context, filter dto.LoanListFilter) ([]entity.LoanApplication, error) {
	if filter.Status != "" && !knownStatus(workflow.KindLead, filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, filter.Status)
	}
	return s.repo.List(ctx, filter)
}

// Transition moves a loan application through the qualification workflow.
func (s *LoanService) Transition(ctx context.Context, id string, req dto.TransitionRequest, operatorID string) (*entity.LoanApplication, error) {
	loanID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid loan id", ErrInvalidInput)
	}
	target := workflow.Status(strings.TrimSpace(req.Status))

	current, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CanTransition(workflow.KindLead, current.Status, target, strings.TrimSpace(req.Reason)); err != nil {
		return nil, err
	}

	loan, err := s.repo.TransitionStatus(ctx, loanID, current.Status, target, TransitionMutationFromRequest(req))
	if err != nil {
		return nil, err
	}

	s.metrics.Transitions.WithLabelValues("loan_application", string(target)).Inc()
	s.notifyAsync(TransitionEvent{
		Entity:     "loan_application",
		ID:         loan.ID.String(),
		FromStatus: string(current.Status),
		ToStatus:   string(target),
		OperatorID: operatorID,
		OccurredAt: loan.UpdatedAt.UTC().Format(time.RFC3339),
	})
	return loan, nil
}

func (s *LoanService) notifyAsync(event TransitionEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		_ = s.notifier.NotifyTransition(ctx, event)
	}()
}
