package handlers

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oficinaplus/oficina-api/internal/models"
)

func TestWithOrderNumberRetryRetriesDuplicateNumber(t *testing.T) {
	calls := 0
	err := withOrderNumberRetry(func() error {
		calls++
		if calls == 1 {
			return &pgconn.PgError{Code: "23505"}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestWithOrderNumberRetryGivesUp(t *testing.T) {
	calls := 0
	err := withOrderNumberRetry(func() error {
		calls++
		return &pgconn.PgError{Code: "23505"}
	})

	if !isUniqueViolation(err) {
		t.Fatalf("want unique violation, got %v", err)
	}
	if calls != orderNumberAttempts {
		t.Fatalf("calls = %d, want %d", calls, orderNumberAttempts)
	}
}

func TestWithOrderNumberRetryPassesThroughOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := withOrderNumberRetry(func() error {
		calls++
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("23505 should be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is not a unique violation")
	}
	if isUniqueViolation(errors.New("qualquer coisa")) {
		t.Fatal("plain error is not a unique violation")
	}
}

func TestOrderTotal(t *testing.T) {
	order := &models.ServiceOrder{
		LaborCost: 100,
		Discount:  30,
		Items: []models.ServiceOrderItem{
			{Total: 50},
			{Total: 20},
		},
	}
	if got := orderTotal(order); got != 140 {
		t.Fatalf("total = %v, want 140", got)
	}
}

func TestOrderTotalFloorsAtZero(t *testing.T) {
	order := &models.ServiceOrder{Discount: 10}
	if got := orderTotal(order); got != 0 {
		t.Fatalf("total = %v, want 0", got)
	}
}
