package quote

import (
	"context"
	"time"

	"github.com/oficinaplus/oficina-api/internal/audit"
	domain "github.com/oficinaplus/oficina-api/internal/domain/quote"
	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/models"
)

// DecideQuote cobre aceite e recusa pelo motorista.
type DecideQuote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDecideQuote(repo domain.Repository, audit *audit.Dispatcher) *DecideQuote {
	return &DecideQuote{repo: repo, audit: audit}
}

func (uc *DecideQuote) Execute(
	ctx context.Context,
	motoristID uint,
	quoteID uint,
	accept bool,
) (*models.Quote, error) {

	q, err := uc.repo.GetQuoteForMotorist(ctx, quoteID, motoristID)
	if err != nil {
		return nil, httperr.ErrBusiness("quote_not_found")
	}

	now := time.Now()

	action := "quote_rejected"
	if accept {
		if err := domain.Accept(q, now); err != nil {
			return nil, err
		}
		action = "quote_accepted"
	} else {
		if err := domain.Reject(q, now); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.UpdateQuote(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		WorkshopID: q.WorkshopID,
		Action:     action,
		Entity:     "quote",
		EntityID:   &q.ID,
	})

	return q, nil
}
