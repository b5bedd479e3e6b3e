package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/repository"
	"github.com/finsarthi/leads-api/internal/workflow"
)

type fakeLeadsRepo struct {
	created      []*entity.InsuranceLead
	listFilter   dto.LeadListFilter
	listResult   []entity.InsuranceLead
	listErr      error
	getResult    *entity.InsuranceLead
	getErr       error
	transitioned *entity.InsuranceLead
	transErr     error
	counts       map[string]int
}

func (f *fakeLeadsRepo) Create(ctx context.Context, lead *entity.InsuranceLead) error {
	lead.ID = uuid.New()
	lead.Status = workflow.StatusPending
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeLeadsRepo) List(ctx context.Context, filter dto.LeadListFilter) ([]entity.InsuranceLead, error) {
	f.listFilter = filter
	return f.listResult, f.listErr
}

func (f *fakeLeadsRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InsuranceLead, error) {
	return f.getResult, f.getErr
}

func (f *fakeLeadsRepo) TransitionStatus(ctx context.Context, id uuid.UUID, expected, target workflow.Status, mut repository.TransitionMutation) (*entity.InsuranceLead, error) {
	if f.transErr != nil {
		return nil, f.transErr
	}
	if f.transitioned == nil {
		lead := *f.getResult
		lead.Status = target
		lead.UpdatedAt = time.Now()
		f.transitioned = &lead
	}
	return f.transitioned, nil
}

func (f *fakeLeadsRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	return f.counts, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []TransitionEvent
	done   chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 8)}
}

func (f *fakeNotifier) NotifyTransition(ctx context.Context, event TransitionEvent) error {
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeNotifier) wait(timeout time.Duration) bool {
	select {
	case <-f.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (f *fakeNotifier) last() TransitionEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return TransitionEvent{}
	}
	return f.events[len(f.events)-1]
}
