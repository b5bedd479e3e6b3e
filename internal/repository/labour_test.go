package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/finsarthi/leads-api/internal/entity"
	"github.com/finsarthi/leads-api/internal/workflow"
)

func TestPGXLabourRepository_CreateApplication_NilGuard(t *testing.T) {
	repo := &PGXLabourRepository{}
	if err := repo.CreateApplication(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil application")
	}
}

func TestPGXLabourRepository_Approve_CommitsProfileAndServices(t *testing.T) {
	city := "Nashik"
	serviceInserts := 0

	tx := &stubTx{}
	tx.queryRowFunc = func(ctx context.Context, query string, args ...any) pgx.Row {
		if strings.Contains(query, "UPDATE labour_applications") {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*string) = "Ravi Kumar"
				*dest[1].(*string) = "+919812345678"
				*dest[2].(**string) = &city
				*dest[3].(*string) = "electrician"
				return nil
			}}
		}
		return &stubRow{scan: func(dest ...any) error {
			created := time.Now()
			*dest[0].(*uuid.UUID) = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
			*dest[1].(*time.Time) = created
			*dest[2].(*time.Time) = created
			return nil
		}}
	}
	tx.execFunc = func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
		serviceInserts++
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}

	repo := &PGXLabourRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
	}}

	rates := []entity.LabourServiceRate{
		{Service: "wiring", DailyRate: 800},
		{Service: "fan_installation", DailyRate: 500},
	}
	profile, err := repo.Approve(context.Background(), uuid.New(), rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Ravi Kumar" || profile.SkillCategory != "electrician" || !profile.Active {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if serviceInserts != 2 {
		t.Fatalf("expected 2 service inserts, got %d", serviceInserts)
	}
	if !tx.committed {
		t.Fatalf("expected transaction committed")
	}
}

func TestPGXLabourRepository_Approve_RollsBackOnServiceFailure(t *testing.T) {
	city := "Nashik"
	tx := &stubTx{}
	tx.queryRowFunc = func(ctx context.Context, query string, args ...any) pgx.Row {
		if strings.Contains(query, "UPDATE labour_applications") {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*string) = "Ravi Kumar"
				*dest[1].(*string) = "+919812345678"
				*dest[2].(**string) = &city
				*dest[3].(*string) = "electrician"
				return nil
			}}
		}
		return &stubRow{scan: func(dest ...any) error {
			created := time.Now()
			*dest[0].(*uuid.UUID) = uuid.New()
			*dest[1].(*time.Time) = created
			*dest[2].(*time.Time) = created
			return nil
		}}
	}
	tx.execFunc = func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("disk full")
	}

	repo := &PGXLabourRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
	}}

	_, err := repo.Approve(context.Background(), uuid.New(), []entity.LabourServiceRate{{Service: "wiring", DailyRate: 800}})
	if err == nil {
		t.Fatalf("expected error from service insert")
	}
	if tx.committed {
		t.Fatalf("transaction must not commit after failure")
	}
	if !tx.rolledBack {
		t.Fatalf("expected rollback after failure")
	}
}

func TestPGXLabourRepository_Approve_AlreadyReviewed(t *testing.T) {
	tx := &stubTx{}
	tx.queryRowFunc = func(ctx context.Context, query string, args ...any) pgx.Row {
		return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
	}

	repo := &PGXLabourRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*string) = "approved"
				return nil
			}}
		},
	}}

	_, err := repo.Approve(context.Background(), uuid.New(), nil)
	if !errors.Is(err, ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict for double approval, got %v", err)
	}
}

func TestPGXLabourRepository_Reject_MissingApplication(t *testing.T) {
	repo := &PGXLabourRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}

	_, err := repo.Reject(context.Background(), uuid.New(), "incomplete documents")
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestPGXLabourRepository_Reject_SetsReason(t *testing.T) {
	var gotArgs []any
	repo := &PGXLabourRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotArgs = args
			return &stubRow{scan: func(dest ...any) error {
				reason := "incomplete documents"
				created := time.Now()
				*dest[0].(*uuid.UUID) = uuid.New()
				*dest[1].(*string) = "Ravi Kumar"
				*dest[2].(*string) = "+919812345678"
				*dest[5].(*string) = "electrician"
				*dest[8].(*[]string) = []string{"wiring"}
				*dest[9].(*string) = "rejected"
				*dest[12].(**string) = &reason
				*dest[14].(*time.Time) = created
				*dest[15].(*time.Time) = created
				return nil
			}}
		},
	}}

	app, err := repo.Reject(context.Background(), uuid.New(), "incomplete documents")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Status != workflow.StatusRejected {
		t.Fatalf("expected rejected, got %q", app.Status)
	}
	if app.RejectionReason == nil || *app.RejectionReason != "incomplete documents" {
		t.Fatalf("expected reason stored, got %+v", app.RejectionReason)
	}
	if gotArgs[2] != "incomplete documents" {
		t.Fatalf("expected reason arg, got %v", gotArgs)
	}
}

func TestPGXLabourRepository_DeleteProfile(t *testing.T) {
	tx := &stubTx{}
	deletes := []string{}
	tx.execFunc = func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
		deletes = append(deletes, query)
		if strings.Contains(query, "labour_profiles") {
			return pgconn.NewCommandTag("DELETE 1"), nil
		}
		return pgconn.NewCommandTag("DELETE 3"), nil
	}

	repo := &PGXLabourRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
	}}

	if err := repo.DeleteProfile(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deletes) != 2 || !strings.Contains(deletes[0], "labour_services") {
		t.Fatalf("expected services removed before profile, got %v", deletes)
	}
	if !tx.committed {
		t.Fatalf("expected delete committed")
	}
}

func TestPGXLabourRepository_DeleteProfile_Missing(t *testing.T) {
	tx := &stubTx{}
	tx.execFunc = func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}

	repo := &PGXLabourRepository{pool: &stubPool{
		beginTxFunc: func(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
			return tx, nil
		},
	}}

	if err := repo.DeleteProfile(context.Background(), uuid.New()); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
