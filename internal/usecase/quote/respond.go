package quote

import (
	"context"
	"time"

	"github.com/oficinaplus/oficina-api/internal/audit"
	domain "github.com/oficinaplus/oficina-api/internal/domain/quote"
	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type RespondQuote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRespondQuote(repo domain.Repository, audit *audit.Dispatcher) *RespondQuote {
	return &RespondQuote{repo: repo, audit: audit}
}

func (uc *RespondQuote) Execute(
	ctx context.Context,
	workshopID uint,
	userID uint,
	quoteID uint,
	amount float64,
	message string,
) (*models.Quote, error) {

	if amount <= 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	q, err := uc.repo.GetQuoteForWorkshop(ctx, quoteID, workshopID)
	if err != nil {
		return nil, httperr.ErrBusiness("quote_not_found")
	}

	if err := domain.Respond(q, amount, message, time.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateQuote(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		UserID:     &userID,
		Action:     "quote_responded",
		Entity:     "quote",
		EntityID:   &q.ID,
	})

	return q, nil
}
