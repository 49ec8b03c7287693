package quote

import (
	"context"
	"errors"
	"testing"

	domain "github.com/oficinaplus/oficina-api/internal/domain/quote"
	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type fakeQuoteRepo struct {
	byID   map[uint]*models.Workshop
	bySlug map[string]*models.Workshop

	created []*models.Quote
}

var _ domain.Repository = (*fakeQuoteRepo)(nil)

func (f *fakeQuoteRepo) GetWorkshopByID(ctx context.Context, id uint) (*models.Workshop, error) {
	if shop, ok := f.byID[id]; ok {
		return shop, nil
	}
	return nil, errors.New("registro não encontrado")
}

func (f *fakeQuoteRepo) GetWorkshopBySlug(ctx context.Context, slug string) (*models.Workshop, error) {
	if shop, ok := f.bySlug[slug]; ok {
		return shop, nil
	}
	return nil, errors.New("registro não encontrado")
}

func (f *fakeQuoteRepo) CreateQuote(ctx context.Context, q *models.Quote) error {
	q.ID = uint(len(f.created) + 1)
	f.created = append(f.created, q)
	return nil
}

func (f *fakeQuoteRepo) GetQuoteForWorkshop(ctx context.Context, quoteID, workshopID uint) (*models.Quote, error) {
	return nil, errors.New("registro não encontrado")
}

func (f *fakeQuoteRepo) GetQuoteForMotorist(ctx context.Context, quoteID, motoristID uint) (*models.Quote, error) {
	return nil, errors.New("registro não encontrado")
}

func (f *fakeQuoteRepo) UpdateQuote(ctx context.Context, q *models.Quote) error { return nil }

func (f *fakeQuoteRepo) ListQuotesForWorkshop(ctx context.Context, workshopID uint, status string) ([]models.Quote, error) {
	return nil, nil
}

func (f *fakeQuoteRepo) ListQuotesForMotorist(ctx context.Context, motoristID uint) ([]models.Quote, error) {
	return nil, nil
}

func (f *fakeQuoteRepo) CountPendingQuotes(ctx context.Context, workshopID uint) (int64, error) {
	return 0, nil
}

func (f *fakeQuoteRepo) ExpireStaleQuotes(ctx context.Context) (int64, error) { return 0, nil }

func submitRepo() *fakeQuoteRepo {
	shop := &models.Workshop{ID: 42, Slug: "oficina-do-ze"}
	return &fakeQuoteRepo{
		byID:   map[uint]*models.Workshop{42: shop},
		bySlug: map[string]*models.Workshop{"oficina-do-ze": shop},
	}
}

func TestSubmitQuoteBySlug(t *testing.T) {
	repo := submitRepo()
	uc := NewSubmitQuote(repo, nil)

	q, err := uc.Execute(context.Background(), SubmitQuoteInput{
		WorkshopSlug: "oficina-do-ze",
		MotoristID:   7,
		Description:  "barulho na suspensão",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.WorkshopID != 42 {
		t.Fatalf("workshop_id = %d, want 42", q.WorkshopID)
	}
	if q.Status != string(domain.InitialStatus()) {
		t.Fatalf("status = %q", q.Status)
	}
	if q.ExpiresAt == nil {
		t.Fatal("expires_at not set")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created = %d quotes", len(repo.created))
	}
}

func TestSubmitQuoteByWorkshopID(t *testing.T) {
	repo := submitRepo()
	uc := NewSubmitQuote(repo, nil)

	q, err := uc.Execute(context.Background(), SubmitQuoteInput{
		WorkshopID:  42,
		MotoristID:  7,
		Description: "troca de óleo",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.WorkshopID != 42 {
		t.Fatalf("workshop_id = %d, want 42", q.WorkshopID)
	}
}

func TestSubmitQuoteWithoutTarget(t *testing.T) {
	uc := NewSubmitQuote(submitRepo(), nil)

	_, err := uc.Execute(context.Background(), SubmitQuoteInput{
		MotoristID:  7,
		Description: "revisão",
	})
	if !httperr.IsBusiness(err, "workshop_required") {
		t.Fatalf("err = %v, want workshop_required", err)
	}
}

func TestSubmitQuoteUnknownWorkshop(t *testing.T) {
	uc := NewSubmitQuote(submitRepo(), nil)

	_, err := uc.Execute(context.Background(), SubmitQuoteInput{
		WorkshopID:  99,
		MotoristID:  7,
		Description: "revisão",
	})
	if !httperr.IsBusiness(err, "workshop_not_found") {
		t.Fatalf("err = %v, want workshop_not_found", err)
	}
}

func TestSubmitQuoteRequiresDescription(t *testing.T) {
	uc := NewSubmitQuote(submitRepo(), nil)

	_, err := uc.Execute(context.Background(), SubmitQuoteInput{
		WorkshopID: 42,
		MotoristID: 7,
	})
	if !httperr.IsBusiness(err, "description_required") {
		t.Fatalf("err = %v, want description_required", err)
	}
}
