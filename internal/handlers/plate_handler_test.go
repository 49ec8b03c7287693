package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/integrations/fipe"
)

func plateRouter(providerURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewPlateHandler(fipe.NewClient(providerURL, ""))

	r := gin.New()
	r.GET("/api/vehicle/plate", h.Lookup)
	return r
}

func TestPlateLookupSuccess(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"marca":"VW","modelo":"GOL","ano":"2015","cor":"BRANCA","municipio":"CURITIBA","uf":"PR"}`))
	}))
	defer provider.Close()

	r := plateRouter(provider.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicle/plate?plate=abc1234", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var info fipe.PlateInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Plate != "ABC-1234" || info.Brand != "VW" {
		t.Fatalf("unexpected payload: %+v", info)
	}
}

// O contrato de erro deste endpoint é fixo: o front exibe a mensagem
// literalmente.
func TestPlateLookupProviderDownHasFixedErrorShape(t *testing.T) {
	r := plateRouter("http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/api/vehicle/plate?plate=abc1234", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Erro ao consultar placa" {
		t.Fatalf("error = %q, want %q", body["error"], "Erro ao consultar placa")
	}
}

func TestPlateLookupNotFound(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer provider.Close()

	r := plateRouter(provider.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicle/plate?plate=abc1234", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestPlateLookupMissingParam(t *testing.T) {
	r := plateRouter("http://unused.invalid")

	req := httptest.NewRequest(http.MethodGet, "/api/vehicle/plate", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
