package quote

import (
	"context"

	"github.com/oficinaplus/oficina-api/internal/models"
)

type Repository interface {
	// -------- Workshop --------
	GetWorkshopByID(
		ctx context.Context,
		id uint,
	) (*models.Workshop, error)

	GetWorkshopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Workshop, error)

	// -------- Quote --------
	CreateQuote(
		ctx context.Context,
		q *models.Quote,
	) error

	GetQuoteForWorkshop(
		ctx context.Context,
		quoteID uint,
		workshopID uint,
	) (*models.Quote, error)

	GetQuoteForMotorist(
		ctx context.Context,
		quoteID uint,
		motoristID uint,
	) (*models.Quote, error)

	UpdateQuote(
		ctx context.Context,
		q *models.Quote,
	) error

	ListQuotesForWorkshop(
		ctx context.Context,
		workshopID uint,
		status string,
	) ([]models.Quote, error)

	ListQuotesForMotorist(
		ctx context.Context,
		motoristID uint,
	) ([]models.Quote, error)

	CountPendingQuotes(
		ctx context.Context,
		workshopID uint,
	) (int64, error)

	ExpireStaleQuotes(
		ctx context.Context,
	) (int64, error)
}
