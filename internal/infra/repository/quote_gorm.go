package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/oficinaplus/oficina-api/internal/domain/quote"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type QuoteGormRepository struct {
	db *gorm.DB
}

func NewQuoteGormRepository(db *gorm.DB) *QuoteGormRepository {
	return &QuoteGormRepository{db: db}
}

// --------------------------------------------------
// Workshop
// --------------------------------------------------

func (r *QuoteGormRepository) GetWorkshopByID(
	ctx context.Context,
	id uint,
) (*models.Workshop, error) {

	var shop models.Workshop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *QuoteGormRepository) GetWorkshopBySlug(
	ctx context.Context,
	slug string,
) (*models.Workshop, error) {

	var shop models.Workshop
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND public_listed = ?", slug, true).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Quote
// --------------------------------------------------

func (r *QuoteGormRepository) CreateQuote(
	ctx context.Context,
	q *models.Quote,
) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuoteGormRepository) GetQuoteForWorkshop(
	ctx context.Context,
	quoteID uint,
	workshopID uint,
) (*models.Quote, error) {

	var q models.Quote
	if err := r.db.WithContext(ctx).
		Preload("Motorist").
		Where("id = ? AND workshop_id = ?", quoteID, workshopID).
		First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteGormRepository) GetQuoteForMotorist(
	ctx context.Context,
	quoteID uint,
	motoristID uint,
) (*models.Quote, error) {

	var q models.Quote
	if err := r.db.WithContext(ctx).
		Where("id = ? AND motorist_id = ?", quoteID, motoristID).
		First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuoteGormRepository) UpdateQuote(
	ctx context.Context,
	q *models.Quote,
) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *QuoteGormRepository) ListQuotesForWorkshop(
	ctx context.Context,
	workshopID uint,
	status string,
) ([]models.Quote, error) {

	query := r.db.WithContext(ctx).
		Preload("Motorist").
		Where("workshop_id = ?", workshopID)

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var quotes []models.Quote
	if err := query.
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteGormRepository) ListQuotesForMotorist(
	ctx context.Context,
	motoristID uint,
) ([]models.Quote, error) {

	var quotes []models.Quote
	if err := r.db.WithContext(ctx).
		Where("motorist_id = ?", motoristID).
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteGormRepository) CountPendingQuotes(
	ctx context.Context,
	workshopID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("workshop_id = ? AND status = ?", workshopID, string(domain.StatusPending)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExpireStaleQuotes marca como expirados os pedidos abertos cujo
// prazo já passou. Retorna quantas linhas mudaram.
func (r *QuoteGormRepository) ExpireStaleQuotes(
	ctx context.Context,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where(
			"status IN ? AND expires_at IS NOT NULL AND expires_at < ?",
			[]string{string(domain.StatusPending), string(domain.StatusQuoted)},
			time.Now(),
		).
		Update("status", string(domain.StatusExpired))

	return res.RowsAffected, res.Error
}
