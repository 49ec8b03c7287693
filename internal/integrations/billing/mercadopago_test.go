package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preapproval"
)

type fakeCreator struct {
	got  preapproval.Request
	resp *preapproval.Response
	err  error
}

func (f *fakeCreator) Create(ctx context.Context, request preapproval.Request) (*preapproval.Response, error) {
	f.got = request
	return f.resp, f.err
}

func TestCreateSubscriptionRequestShape(t *testing.T) {
	creator := &fakeCreator{
		resp: &preapproval.Response{
			ID:        "sub-123",
			Status:    "pending",
			InitPoint: "https://mp.test/checkout/sub-123",
		},
	}

	g := NewGatewayWithClient(creator, "https://app.test/")

	sub, err := g.CreateSubscription(context.Background(), 42, "dono@oficina.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.ID != "sub-123" || sub.InitPoint != "https://mp.test/checkout/sub-123" {
		t.Fatalf("unexpected subscription: %+v", sub)
	}

	req := creator.got
	if req.ExternalReference != "workshop-42" {
		t.Fatalf("external_reference = %q", req.ExternalReference)
	}
	if req.PayerEmail != "dono@oficina.com" {
		t.Fatalf("payer_email = %q", req.PayerEmail)
	}
	if req.BackURL != "https://app.test/oficina/assinatura" {
		t.Fatalf("back_url = %q", req.BackURL)
	}
	if req.AutoRecurring == nil {
		t.Fatal("auto_recurring missing")
	}
	if req.AutoRecurring.TransactionAmount != PlanProMonthly {
		t.Fatalf("amount = %v, want %v", req.AutoRecurring.TransactionAmount, PlanProMonthly)
	}
	if req.AutoRecurring.CurrencyID != "BRL" || req.AutoRecurring.FrequencyType != "months" {
		t.Fatalf("recurrence = %+v", req.AutoRecurring)
	}
}

func TestCreateSubscriptionPropagatesError(t *testing.T) {
	wantErr := errors.New("mp is down")
	g := NewGatewayWithClient(&fakeCreator{err: wantErr}, "https://app.test")

	_, err := g.CreateSubscription(context.Background(), 1, "x@y.com")
	if !errors.Is(err, wantErr) {
		t.Fatalf("want provider error, got %v", err)
	}
}

func TestNilGatewayIsNotConfigured(t *testing.T) {
	var g *Gateway
	_, err := g.CreateSubscription(context.Background(), 1, "x@y.com")
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("want ErrGatewayNotConfigured, got %v", err)
	}
}

func TestIsGatewayUnauthorized(t *testing.T) {
	if !IsGatewayUnauthorized(errors.New("401 Unauthorized")) {
		t.Fatal("401 must classify as unauthorized")
	}
	if IsGatewayUnauthorized(errors.New("timeout")) {
		t.Fatal("timeout must not classify as unauthorized")
	}
	if IsGatewayUnauthorized(nil) {
		t.Fatal("nil error is never unauthorized")
	}
}
