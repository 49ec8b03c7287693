package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/models"
)

type fakeRoles struct {
	workshopID uint
	motoristID uint
}

func (f *fakeRoles) WorkshopIDByProfile(ctx context.Context, profileID uint) (uint, error) {
	if f.workshopID == 0 {
		return 0, errors.New("sem oficina")
	}
	return f.workshopID, nil
}

func (f *fakeRoles) MotoristIDByProfile(ctx context.Context, profileID uint) (uint, error) {
	if f.motoristID == 0 {
		return 0, errors.New("sem motorista")
	}
	return f.motoristID, nil
}

// identity reproduz o que AuthMiddleware injeta para um usuário logado:
// id do usuário e, quando existe, perfil. Nada além disso.
func identity(profileID uint, profileType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserID, uint(1))
		if profileID != 0 {
			c.Set(ContextProfileID, profileID)
			c.Set(ContextProfileType, profileType)
		}
	}
}

func echoRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"workshop_id": c.GetUint(ContextWorkshopID),
		"motorist_id": c.GetUint(ContextMotoristID),
	})
}

func doRoleGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (body %s)", err, w.Body.String())
	}
	return w, body
}

func TestResolveRoleInjectsWorkshopID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/ai/history",
		identity(5, models.ProfileTypeWorkshop),
		ResolveRole(&fakeRoles{workshopID: 7}),
		echoRoles,
	)

	w, body := doRoleGet(t, r, "/api/ai/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["workshop_id"] != float64(7) {
		t.Fatalf("workshop_id = %v, want 7", body["workshop_id"])
	}
	if body["motorist_id"] != float64(0) {
		t.Fatalf("motorist_id = %v, want 0", body["motorist_id"])
	}
}

func TestResolveRoleInjectsMotoristID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/ai/history",
		identity(5, models.ProfileTypeMotorist),
		ResolveRole(&fakeRoles{motoristID: 9}),
		echoRoles,
	)

	w, body := doRoleGet(t, r, "/api/ai/history")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["motorist_id"] != float64(9) {
		t.Fatalf("motorist_id = %v, want 9", body["motorist_id"])
	}
}

func TestResolveRoleWithoutProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/ai/history", identity(0, ""), ResolveRole(&fakeRoles{}), echoRoles)

	w, body := doRoleGet(t, r, "/api/ai/history")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body["error"] != "profile_required" {
		t.Fatalf("error = %v, want profile_required", body["error"])
	}
}

func TestResolveRoleUnknownProfileType(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/ai/history", identity(5, "outro"), ResolveRole(&fakeRoles{workshopID: 7}), echoRoles)

	w, _ := doRoleGet(t, r, "/api/ai/history")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireWorkshopRejectsMotorist(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/clients",
		identity(5, models.ProfileTypeMotorist),
		RequireWorkshop(&fakeRoles{motoristID: 9}),
		echoRoles,
	)

	w, body := doRoleGet(t, r, "/api/clients")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body["error"] != "workshop_profile_required" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestRequireWorkshopInjectsID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/clients",
		identity(5, models.ProfileTypeWorkshop),
		RequireWorkshop(&fakeRoles{workshopID: 3}),
		echoRoles,
	)

	w, body := doRoleGet(t, r, "/api/clients")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %v", w.Code, body)
	}
	if body["workshop_id"] != float64(3) {
		t.Fatalf("workshop_id = %v, want 3", body["workshop_id"])
	}
}
