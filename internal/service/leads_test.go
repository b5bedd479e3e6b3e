package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finsarthi/leads-api/internal/dto"
	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/metrics"
	"github.com/finsarthi/leads-api/internal/workflow"
)

func newLeadService(repo *fakeLeadsRepo, notifier Notifier) *LeadService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return NewLeadService(repo, NewContactNormalizer("IN"), metrics.NewNop(), notifier, zap.NewNop())
}

func TestLeadService_Submit_NormalizesContact(t *testing.T) {
	repo := &fakeLeadsRepo{}
	svc := newLeadService(repo, nil)

	lead, err := svc.Submit(context.Background(), dto.SubmitLeadRequest{
		Name:          "  Asha Verma ",
		Phone:         "98765 43210",
		Email:         "Asha@Example.COM",
		InsuranceType: " Health ",
		City:          "Pune",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Phone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %q", lead.Phone)
	}
	if lead.Email == nil || *lead.Email != "asha@example.com" {
		t.Fatalf("expected lowercased email, got %+v", lead.Email)
	}
	if lead.InsuranceType != "health" {
		t.Fatalf("expected lowercased type, got %q", lead.InsuranceType)
	}
	if lead.Status != workflow.StatusPending {
		t.Fatalf("new leads must start pending, got %q", lead.Status)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created lead")
	}
}

func TestLeadService_Submit_KeepsUnparseablePhone(t *testing.T) {
	repo := &fakeLeadsRepo{}
	svc := newLeadService(repo, nil)

	lead, err := svc.Submit(context.Background(), dto.SubmitLeadRequest{
		Name:          "Asha",
		Phone:         "landline 022-1234",
		InsuranceType: "car",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Phone != "landline 022-1234" {
		t.Fatalf("expected raw phone kept, got %q", lead.Phone)
	}
}

func TestLeadService_Submit_DropsBadEmail(t *testing.T) {
	repo := &fakeLeadsRepo{}
	svc := newLeadService(repo, nil)

	lead, err := svc.Submit(context.Background(), dto.SubmitLeadRequest{
		Name:          "Asha",
		Phone:         "9876543210",
		Email:         "not-an-email",
		InsuranceType: "car",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Email != nil {
		t.Fatalf("expected bad email dropped, got %q", *lead.Email)
	}
}

func TestLeadService_Submit_RequiredFields(t *testing.T) {
	svc := newLeadService(&fakeLeadsRepo{}, nil)

	cases := []dto.SubmitLeadRequest{
		{Phone: "9876543210", InsuranceType: "car"},
		{Name: "Asha", InsuranceType: "car"},
		{Name: "Asha", Phone: "9876543210"},
	}
	for _, req := range cases {
		if _, err := svc.Submit(context.Background(), req); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", req, err)
		}
	}
}

func TestLeadService_List_RejectsUnknownStatus(t *testing.T) {
	svc := newLeadService(&fakeLeadsRepo{}, nil)

	if _, err := svc.List(context.Background(), dto.LeadListFilter{Status: "bogus"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeadService_Transition_GuardsGraph(t *testing.T) {
	repo := &fakeLeadsRepo{
		getResult: &entity.InsuranceLead{ID: uuid.New(), Status: workflow.StatusPending},
	}
	svc := newLeadService(repo, nil)

	_, err := svc.Transition(context.Background(), repo.getResult.ID.String(), dto.TransitionRequest{Status: "converted"}, "op-1")
	if !errors.Is(err, workflow.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestLeadService_Transition_RejectionNeedsReason(t *testing.T) {
	repo := &fakeLeadsRepo{
		getResult: &entity.InsuranceLead{ID: uuid.New(), Status: workflow.StatusPending},
	}
	svc := newLeadService(repo, nil)

	_, err := svc.Transition(context.Background(), repo.getResult.ID.String(), dto.TransitionRequest{Status: "rejected"}, "op-1")
	if !errors.Is(err, workflow.ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}
}

func TestLeadService_Transition_NotifiesWebhook(t *testing.T) {
	repo := &fakeLeadsRepo{
		getResult: &entity.InsuranceLead{ID: uuid.New(), Status: workflow.StatusPending, UpdatedAt: time.Now()},
	}
	notifier := newFakeNotifier()
	svc := newLeadService(repo, notifier)

	lead, err := svc.Transition(context.Background(), repo.getResult.ID.String(), dto.TransitionRequest{Status: "contacted"}, "op-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Status != workflow.StatusContacted {
		t.Fatalf("expected contacted, got %q", lead.Status)
	}

	if !notifier.wait(time.Second) {
		t.Fatalf("expected webhook notification")
	}
	event := notifier.last()
	if event.Entity != "insurance_lead" || event.ToStatus != "contacted" || event.OperatorID != "op-1" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestLeadService_Transition_TerminalState(t *testing.T) {
	repo := &fakeLeadsRepo{
		getResult: &entity.InsuranceLead{ID: uuid.New(), Status: workflow.StatusConverted},
	}
	svc := newLeadService(repo, nil)

	_, err := svc.Transition(context.Background(), repo.getResult.ID.String(), dto.TransitionRequest{Status: "contacted"}, "op-1")
	if !errors.Is(err, workflow.ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState, got %v", err)
	}
}
