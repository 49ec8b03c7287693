package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/session"
)

const guardTestSecret = "guard-test-secret"

type fakeProfiles struct {
	byUser map[uint]*models.Profile
}

func (f *fakeProfiles) ProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

func guardRouter(t *testing.T, profiles session.ProfileSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver := session.NewResolver(guardTestSecret, nil, profiles)

	r := gin.New()
	r.Use(RouteGuard(resolver, DefaultGuardRules))

	for _, path := range []string{
		"/", "/oficina", "/oficina/clientes", "/motorista",
		"/completar-cadastro", "/login-oficina", "/login-motorista",
		"/cadastro-oficina", "/oficinarios", "/sobre",
	} {
		r.GET(path, func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
	}
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func accessCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()

	token, err := session.MintAccessToken(guardTestSecret, userID, session.AccessTokenTTL)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return &http.Cookie{Name: session.AccessCookie, Value: token}
}

func TestGuardProtectedWithoutSessionRedirectsHome(t *testing.T) {
	r := guardRouter(t, &fakeProfiles{})

	for _, path := range []string{"/oficina", "/oficina/clientes", "/motorista", "/completar-cadastro"} {
		w := doGet(t, r, path)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: status = %d, want 302", path, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/" {
			t.Fatalf("%s: location = %q, want /", path, loc)
		}
	}
}

func TestGuardProtectedWithSessionPasses(t *testing.T) {
	profiles := &fakeProfiles{byUser: map[uint]*models.Profile{
		7: {UserID: 7, Type: models.ProfileTypeWorkshop},
	}}
	r := guardRouter(t, profiles)

	w := doGet(t, r, "/oficina", accessCookie(t, 7))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGuardAuthEntryRedirectsByProfileType(t *testing.T) {
	profiles := &fakeProfiles{byUser: map[uint]*models.Profile{
		1: {UserID: 1, Type: models.ProfileTypeWorkshop},
		2: {UserID: 2, Type: models.ProfileTypeMotorist},
	}}
	r := guardRouter(t, profiles)

	cases := []struct {
		userID uint
		path   string
		want   string
	}{
		{1, "/login-oficina", "/oficina"},
		{1, "/cadastro-oficina", "/oficina"},
		{2, "/login-motorista", "/motorista"},
		{2, "/login-oficina", "/motorista"},
	}

	for _, tc := range cases {
		w := doGet(t, r, tc.path, accessCookie(t, tc.userID))
		if w.Code != http.StatusFound {
			t.Fatalf("%s (user %d): status = %d, want 302", tc.path, tc.userID, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != tc.want {
			t.Fatalf("%s: location = %q, want %q", tc.path, loc, tc.want)
		}
	}
}

func TestGuardAuthEntryUnknownProfilePassesThrough(t *testing.T) {
	// sessão válida mas perfil ainda não provisionado
	r := guardRouter(t, &fakeProfiles{})

	w := doGet(t, r, "/login-oficina", accessCookie(t, 99))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGuardAuthEntryWithoutSessionPasses(t *testing.T) {
	r := guardRouter(t, &fakeProfiles{})

	w := doGet(t, r, "/login-oficina")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGuardMatchesPrefixBoundaries(t *testing.T) {
	r := guardRouter(t, &fakeProfiles{})

	// "/oficinarios" não é subcaminho de "/oficina"
	w := doGet(t, r, "/oficinarios")
	if w.Code != http.StatusOK {
		t.Fatalf("/oficinarios: status = %d, want 200", w.Code)
	}

	w = doGet(t, r, "/sobre")
	if w.Code != http.StatusOK {
		t.Fatalf("/sobre: status = %d, want 200", w.Code)
	}
}

func TestGuardIgnoresExpiredAccessTokenWithoutRefresh(t *testing.T) {
	r := guardRouter(t, &fakeProfiles{})

	token, err := session.MintAccessToken(guardTestSecret, 7, -time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	w := doGet(t, r, "/oficina", &http.Cookie{Name: session.AccessCookie, Value: token})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
}
