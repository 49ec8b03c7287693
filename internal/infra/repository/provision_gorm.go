package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/models"
)

type ProvisionGormRepository struct {
	db *gorm.DB
}

func NewProvisionGormRepository(db *gorm.DB) *ProvisionGormRepository {
	return &ProvisionGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *ProvisionGormRepository) FindUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *ProvisionGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *ProvisionGormRepository) FindProfileByUserID(
	ctx context.Context,
	userID uint,
) (*models.Profile, error) {

	var profile models.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProvisionGormRepository) CreateProfile(
	ctx context.Context,
	p *models.Profile,
) error {

	err := r.db.WithContext(ctx).Create(p).Error
	if isUniqueViolation(err) {
		// corrida entre duas chamadas de provisionamento: a linha
		// já existe, então a operação continua idempotente
		return r.db.WithContext(ctx).
			Where("user_id = ?", p.UserID).
			First(p).Error
	}
	return err
}

// --------------------------------------------------
// Workshop / Motorist
// --------------------------------------------------

func (r *ProvisionGormRepository) FindWorkshopByProfileID(
	ctx context.Context,
	profileID uint,
) (*models.Workshop, error) {

	var shop models.Workshop
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ProvisionGormRepository) CreateWorkshop(
	ctx context.Context,
	w *models.Workshop,
) error {

	err := r.db.WithContext(ctx).Create(w).Error
	if isUniqueViolation(err) {
		return r.db.WithContext(ctx).
			Where("profile_id = ?", w.ProfileID).
			First(w).Error
	}
	return err
}

func (r *ProvisionGormRepository) FindMotoristByProfileID(
	ctx context.Context,
	profileID uint,
) (*models.Motorist, error) {

	var motorist models.Motorist
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&motorist).Error; err != nil {
		return nil, err
	}
	return &motorist, nil
}

func (r *ProvisionGormRepository) CreateMotorist(
	ctx context.Context,
	m *models.Motorist,
) error {

	err := r.db.WithContext(ctx).Create(m).Error
	if isUniqueViolation(err) {
		return r.db.WithContext(ctx).
			Where("profile_id = ?", m.ProfileID).
			First(m).Error
	}
	return err
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
