package handler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/metrics"
	"github.com/finsarthi/leads-api/internal/repository"
	"github.com/finsarthi/leads-api/internal/service"
	"github.com/finsarthi/leads-api/internal/workflow"
)

type stubLeadsRepo struct {
	create     func(ctx context.Context, lead *entity.InsuranceLead) error
	list       func(ctx context.Context, filter dto.LeadListFilter) ([]entity.InsuranceLead, error)
	getByID    func(ctx context.Context, id uuid.UUID) (*entity.InsuranceLead, error)
	transition func(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut repository.TransitionMutation) (*entity.InsuranceLead, error)
}

func (s *stubLeadsRepo) Create(ctx context.Context, lead *entity.InsuranceLead) error {
	if s.create != nil {
		return s.create(ctx, lead)
	}
	lead.ID = uuid.New()
	lead.Status = workflow.StatusPending
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	return nil
}

func (s *stubLeadsRepo) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.InsuranceLead, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, nil
}

func (s *stubLeadsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InsuranceLead, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, repository.ErrLeadNotFound
}

func (s *stubLeadsRepo) TransitionStatus(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut repository.TransitionMutation) (*entity.InsuranceLead, error) {
	if s.transition != nil {
		return s.transition(ctx, id, expected, target, mut)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeadsRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	return map[string]int{"pending": 1}, nil
}

type stubLabourRepo struct {
	get     func(ctx context.Context, id uuid.UUID) (*entity.LabourApplication, error)
	approve func(ctx context.Context, id uuid.UUID, rates []entity.LabourServiceRate) (*entity.LabourProfile, error)
	reject  func(ctx context.Context, id uuid.UUID, reason string) (*entity.LabourApplication, error)
}

func (s *stubLabourRepo) CreateApplication(ctx context.Context, app *entity.LabourApplication) error {
	app.ID = uuid.New()
	app.Status = workflow.StatusPending
	return nil
}

func (s *stubLabourRepo) ListApplications(ctx context.Context, filter dto.LabourListFilter) ([]entity.LabourApplication, error) {
	return nil, nil
}

func (s *stubLabourRepo) GetApplication(ctx context.Context, id uuid.UUID) (*entity.LabourApplication, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, repository.ErrApplicationNotFound
}

func (s *stubLabourRepo) Approve(ctx context.Context, id uuid.UUID, rates []entity.LabourServiceRate) (*entity.LabourProfile, error) {
	if s.approve != nil {
		return s.approve(ctx, id, rates)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLabourRepo) Reject(ctx context.Context, id uuid.UUID, reason string) (*entity.LabourApplication, error) {
	if s.reject != nil {
		return s.reject(ctx, id, reason)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLabourRepo) ListProfiles(ctx context.Context) ([]entity.LabourProfile, error) {
	return nil, nil
}

func (s *stubLabourRepo) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubUsersRepo struct {
	getByEmail func(ctx context.Context, email string) (*entity.User, error)
	create     func(ctx context.Context, user *entity.User) error
}

func (s *stubUsersRepo) Create(ctx context.Context, user *entity.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (s *stubUsersRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (s *stubUsersRepo) List(ctx context.Context) ([]entity.User, error) {
	return nil, nil
}

func (s *stubUsersRepo) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return nil
}

func (s *stubUsersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newTestLeadService(repo repository.InsuranceLeadsRepository) *service.LeadService {
	return service.NewLeadService(repo, service.NewContactNormalizer("IN"), metrics.NewNop(), service.NotifierFromConfig("", zap.NewNop()), zap.NewNop())
}
