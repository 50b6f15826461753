package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMemoryQuotaInitializesDefaults(t *testing.T) {
	svc := NewService()

	u, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Plan != "Starter" || u.Limit != 25 || u.Used != 0 {
		t.Fatalf("unexpected defaults: %+v", u)
	}
	if !u.ResetsAt.After(time.Now()) {
		t.Fatalf("expected a future reset, got %s", u.ResetsAt)
	}
}

func TestMemoryQuotaConsumeAndLimit(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	u, err := svc.Consume(ctx, "user-1", 24)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if u.Used != 24 {
		t.Fatalf("expected used=24, got %d", u.Used)
	}

	ok, _, err := svc.CanConsume(ctx, "user-1", 1)
	if err != nil || !ok {
		t.Fatalf("expected one remaining, ok=%v err=%v", ok, err)
	}
	ok, _, err = svc.CanConsume(ctx, "user-1", 2)
	if err != nil || ok {
		t.Fatalf("expected 2 to exceed, ok=%v err=%v", ok, err)
	}

	if _, err := svc.Consume(ctx, "user-1", 2); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestMemoryQuotaIsolatesUsers(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 5); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	u, err := svc.Get(ctx, "user-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected user-2 untouched, got used=%d", u.Used)
	}
}

func TestPGQuotaConsumeUpdatesRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewPostgresService(NewPGStore(db))
	resetsAt := time.Now().UTC().Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO generation_quota").
		WithArgs("user-1", "Starter", 25, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT plan, limit_amount, used, resets_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan", "limit_amount", "used", "resets_at"}).
			AddRow("Starter", 25, 10, resetsAt))
	mock.ExpectExec("UPDATE generation_quota SET used").
		WithArgs(11, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := svc.Consume(context.Background(), "user-1", 1)
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if u.Used != 11 {
		t.Fatalf("expected used=11, got %d", u.Used)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGQuotaConsumeAtLimitRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewPostgresService(NewPGStore(db))
	resetsAt := time.Now().UTC().Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO generation_quota").
		WithArgs("user-1", "Starter", 25, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT plan, limit_amount, used, resets_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan", "limit_amount", "used", "resets_at"}).
			AddRow("Starter", 25, 25, resetsAt))
	mock.ExpectRollback()

	if _, err := svc.Consume(context.Background(), "user-1", 1); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGQuotaExpiredWindowResets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewPostgresService(NewPGStore(db))
	expired := time.Now().UTC().Add(-time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO generation_quota").
		WithArgs("user-1", "Starter", 25, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT plan, limit_amount, used, resets_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"plan", "limit_amount", "used", "resets_at"}).
			AddRow("Starter", 25, 25, expired))
	mock.ExpectExec("UPDATE generation_quota SET used = 0").
		WithArgs(sqlmock.AnyArg(), "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected reset usage, got %d", u.Used)
	}
	if !u.ResetsAt.After(time.Now().UTC()) {
		t.Fatalf("expected future reset, got %s", u.ResetsAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
