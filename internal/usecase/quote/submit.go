package quote

import (
	"context"
	"time"

	"github.com/oficinaplus/oficina-api/internal/audit"
	domain "github.com/oficinaplus/oficina-api/internal/domain/quote"
	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/models"
)

// Prazo padrão de validade de um pedido de orçamento.
const defaultQuoteLifetime = 7 * 24 * time.Hour

// ======================================================
// INPUT
// ======================================================

type SubmitQuoteInput struct {
	// A oficina alvo vem por id (link interno do app) ou por slug
	// (página pública); um dos dois é obrigatório.
	WorkshopID   uint
	WorkshopSlug string
	MotoristID   uint

	MotoristVehicleID  *uint
	VehicleDescription string
	Plate              string
	Description        string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitQuote struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitQuote(repo domain.Repository, audit *audit.Dispatcher) *SubmitQuote {
	return &SubmitQuote{repo: repo, audit: audit}
}

func (uc *SubmitQuote) Execute(
	ctx context.Context,
	in SubmitQuoteInput,
) (*models.Quote, error) {

	var (
		shop *models.Workshop
		err  error
	)
	switch {
	case in.WorkshopID != 0:
		shop, err = uc.repo.GetWorkshopByID(ctx, in.WorkshopID)
	case in.WorkshopSlug != "":
		shop, err = uc.repo.GetWorkshopBySlug(ctx, in.WorkshopSlug)
	default:
		return nil, httperr.ErrBusiness("workshop_required")
	}
	if err != nil {
		return nil, httperr.ErrBusiness("workshop_not_found")
	}

	if in.Description == "" {
		return nil, httperr.ErrBusiness("description_required")
	}

	expiresAt := time.Now().Add(defaultQuoteLifetime)

	q := &models.Quote{
		WorkshopID:         shop.ID,
		MotoristID:         in.MotoristID,
		MotoristVehicleID:  in.MotoristVehicleID,
		VehicleDescription: in.VehicleDescription,
		Plate:              in.Plate,
		Description:        in.Description,
		Status:             string(domain.InitialStatus()),
		ExpiresAt:          &expiresAt,
	}

	if err := uc.repo.CreateQuote(ctx, q); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		WorkshopID: shop.ID,
		Action:     "quote_submitted",
		Entity:     "quote",
		EntityID:   &q.ID,
	})

	return q, nil
}
