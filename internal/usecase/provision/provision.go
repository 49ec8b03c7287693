package provision

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oficinaplus/oficina-api/internal/models"
)

// Janela de teste concedida a toda oficina recém-criada.
const TrialDays = 14

var (
	ErrUnauthenticated = errors.New("no session and no email supplied")
	ErrUserNotFound    = errors.New("user not found for email")
)

// ======================================================
// REPOSITORY
// ======================================================

type Repository interface {
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	FindProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error

	FindWorkshopByProfileID(ctx context.Context, profileID uint) (*models.Workshop, error)
	CreateWorkshop(ctx context.Context, w *models.Workshop) error

	FindMotoristByProfileID(ctx context.Context, profileID uint) (*models.Motorist, error)
	CreateMotorist(ctx context.Context, m *models.Motorist) error
}

// ======================================================
// INPUT
// ======================================================

type Input struct {
	// UserID vem da sessão; zero quando não há sessão.
	UserID uint

	// Email é o fallback para a corrida de cadastro em que a sessão
	// ainda não está disponível logo após o signup.
	Email string

	Name     string
	UserType string
}

// ======================================================
// USE CASE
// ======================================================

type CreateProfile struct {
	repo Repository
}

func NewCreateProfile(repo Repository) *CreateProfile {
	return &CreateProfile{repo: repo}
}

// Execute é idempotente: perfil e registro de papel são sempre
// checados antes de inseridos, então repetir a chamada para a mesma
// identidade não duplica linhas.
func (uc *CreateProfile) Execute(ctx context.Context, in Input) error {
	user, err := uc.resolveUser(ctx, in)
	if err != nil {
		return err
	}

	profile, err := uc.repo.FindProfileByUserID(ctx, user.ID)
	if err != nil {
		profile = &models.Profile{
			UserID: user.ID,
			Type:   in.UserType,
			Name:   firstNonEmpty(in.Name, user.Name),
			Email:  user.Email,
		}
		if err := uc.repo.CreateProfile(ctx, profile); err != nil {
			return err
		}
	}

	// O tipo do perfil é imutável; o registro de papel segue o
	// tipo existente, não o pedido.
	switch profile.Type {
	case models.ProfileTypeWorkshop:
		return uc.ensureWorkshop(ctx, profile)
	case models.ProfileTypeMotorist:
		return uc.ensureMotorist(ctx, profile)
	}
	return nil
}

func (uc *CreateProfile) resolveUser(ctx context.Context, in Input) (*models.User, error) {
	if in.UserID != 0 {
		return uc.repo.FindUserByID(ctx, in.UserID)
	}

	if in.Email == "" {
		return nil, ErrUnauthenticated
	}

	user, err := uc.repo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (uc *CreateProfile) ensureWorkshop(ctx context.Context, profile *models.Profile) error {
	if _, err := uc.repo.FindWorkshopByProfileID(ctx, profile.ID); err == nil {
		return nil
	}

	name := firstNonEmpty(profile.Name, "Oficina")
	trialEndsAt := time.Now().Add(TrialDays * 24 * time.Hour)

	return uc.repo.CreateWorkshop(ctx, &models.Workshop{
		ProfileID:   profile.ID,
		Name:        name,
		Slug:        newSlug(name),
		PlanType:    "free",
		TrialEndsAt: &trialEndsAt,
	})
}

func (uc *CreateProfile) ensureMotorist(ctx context.Context, profile *models.Profile) error {
	if _, err := uc.repo.FindMotoristByProfileID(ctx, profile.ID); err == nil {
		return nil
	}

	return uc.repo.CreateMotorist(ctx, &models.Motorist{
		ProfileID: profile.ID,
		Name:      profile.Name,
	})
}

// ======================================================
// HELPERS
// ======================================================

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// newSlug gera um slug único; o sufixo evita colisão entre oficinas
// com o mesmo nome.
func newSlug(name string) string {
	base := slugCleanup.ReplaceAllString(strings.ToLower(name), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "oficina"
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
