package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/session"
	"github.com/oficinaplus/oficina-api/internal/usecase/provision"
)

const handlerTestSecret = "handler-test-secret"

// provisionFake implementa provision.Repository em memória.
type provisionFake struct {
	user      *models.User
	profiles  []models.Profile
	workshops []models.Workshop
	motorists []models.Motorist
}

func (r *provisionFake) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, errors.New("not found")
}

func (r *provisionFake) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, errors.New("not found")
}

func (r *provisionFake) FindProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	for i := range r.profiles {
		if r.profiles[i].UserID == userID {
			return &r.profiles[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *provisionFake) CreateProfile(ctx context.Context, p *models.Profile) error {
	p.ID = uint(len(r.profiles) + 1)
	r.profiles = append(r.profiles, *p)
	return nil
}

func (r *provisionFake) FindWorkshopByProfileID(ctx context.Context, profileID uint) (*models.Workshop, error) {
	for i := range r.workshops {
		if r.workshops[i].ProfileID == profileID {
			return &r.workshops[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *provisionFake) CreateWorkshop(ctx context.Context, w *models.Workshop) error {
	w.ID = uint(len(r.workshops) + 1)
	r.workshops = append(r.workshops, *w)
	return nil
}

func (r *provisionFake) FindMotoristByProfileID(ctx context.Context, profileID uint) (*models.Motorist, error) {
	for i := range r.motorists {
		if r.motorists[i].ProfileID == profileID {
			return &r.motorists[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (r *provisionFake) CreateMotorist(ctx context.Context, m *models.Motorist) error {
	m.ID = uint(len(r.motorists) + 1)
	r.motorists = append(r.motorists, *m)
	return nil
}

type noProfiles struct{}

func (noProfiles) ProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return nil, errors.New("not found")
}

func profileRouter(repo *provisionFake) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: handlerTestSecret}
	resolver := session.NewResolver(handlerTestSecret, nil, noProfiles{})
	h := NewProfileHandler(provision.NewCreateProfile(repo), cfg, resolver)

	r := gin.New()
	r.POST("/api/create-profile", h.CreateProfile)
	return r
}

func postJSON(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProfileWithSessionCookie(t *testing.T) {
	repo := &provisionFake{user: &models.User{ID: 1, Name: "Maria", Email: "maria@x.com"}}
	r := profileRouter(repo)

	token, err := session.MintAccessToken(handlerTestSecret, 1, session.AccessTokenTTL)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	w := postJSON(r, "/api/create-profile",
		`{"user_type":"oficina","name":"Oficina da Maria"}`,
		&http.Cookie{Name: session.AccessCookie, Value: token},
	)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(repo.workshops) != 1 {
		t.Fatalf("workshops = %d, want 1", len(repo.workshops))
	}
}

func TestCreateProfileFallsBackToEmail(t *testing.T) {
	repo := &provisionFake{user: &models.User{ID: 1, Name: "João", Email: "joao@x.com"}}
	r := profileRouter(repo)

	// sem cookie: o corpo carrega o e-mail do cadastro recém-feito
	w := postJSON(r, "/api/create-profile", `{"user_type":"motorista","email":"joao@x.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(repo.motorists) != 1 {
		t.Fatalf("motorists = %d, want 1", len(repo.motorists))
	}
}

func TestCreateProfileWithoutSessionOrEmail(t *testing.T) {
	r := profileRouter(&provisionFake{})

	w := postJSON(r, "/api/create-profile", `{"user_type":"oficina"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreateProfileUnknownEmail(t *testing.T) {
	r := profileRouter(&provisionFake{})

	w := postJSON(r, "/api/create-profile", `{"user_type":"oficina","email":"nao@existe.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreateProfileRejectsUnknownType(t *testing.T) {
	r := profileRouter(&provisionFake{})

	w := postJSON(r, "/api/create-profile", `{"user_type":"admin"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
