package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/integrations/ai"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type DiagnosisHandler struct {
	db  *gorm.DB
	gen ai.Generator
}

// gen pode ser nil quando a chave do provedor não está configurada;
// o endpoint responde erro estruturado em vez de derrubar o boot.
func NewDiagnosisHandler(db *gorm.DB, gen ai.Generator) *DiagnosisHandler {
	return &DiagnosisHandler{db: db, gen: gen}
}

type DiagnoseRequest struct {
	Symptoms    string `json:"symptoms" binding:"required"`
	VehicleInfo string `json:"vehicle_info"`
}

func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	var req DiagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Descreva os sintomas do veículo.")
		return
	}

	if h.gen == nil {
		httperr.Internal(c, "ai_not_configured", "Diagnóstico por IA não está configurado.")
		return
	}

	diag, err := ai.Diagnose(c.Request.Context(), h.gen, req.Symptoms, req.VehicleInfo)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrQuotaExceeded):
			httperr.UpstreamQuota(c, "ai_quota_exceeded", "Limite do provedor de IA atingido. Tente de novo em instantes.")
		case errors.Is(err, ai.ErrProviderAuth):
			httperr.Internal(c, "ai_auth_failed", "Credenciais do provedor de IA rejeitadas.")
		default:
			httperr.WriteDetails(c, http.StatusInternalServerError,
				"ai_unavailable", "Não foi possível gerar o diagnóstico.",
				gin.H{"provider_error": err.Error()})
		}
		return
	}

	record := models.Diagnostic{
		Symptoms:      req.Symptoms,
		VehicleInfo:   req.VehicleInfo,
		Result:        diag.Text,
		Severity:      diag.Severity,
		SafeToDrive:   diag.SafeToDrive,
		EstimatedCost: diag.EstimatedCost,
		Model:         diag.Model,
	}
	if v, ok := c.Get(middleware.ContextWorkshopID); ok {
		id := v.(uint)
		record.WorkshopID = &id
	}
	if v, ok := c.Get(middleware.ContextMotoristID); ok {
		id := v.(uint)
		record.MotoristID = &id
	}

	// histórico é best-effort, a resposta não depende dele
	if err := h.db.Create(&record).Error; err != nil {
		log.Println("failed to persist diagnostic:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"diagnosis": diag.Text,
		"metadata": gin.H{
			"severity":      diag.Severity,
			"safeToDrive":   diag.SafeToDrive,
			"estimatedCost": diag.EstimatedCost,
			"model":         diag.Model,
		},
	})
}

func (h *DiagnosisHandler) History(c *gin.Context) {
	q := h.db.Order("created_at DESC").Limit(20)

	switch {
	case hasKey(c, middleware.ContextWorkshopID):
		q = q.Where("workshop_id = ?", c.MustGet(middleware.ContextWorkshopID))
	case hasKey(c, middleware.ContextMotoristID):
		q = q.Where("motorist_id = ?", c.MustGet(middleware.ContextMotoristID))
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "profile_required"})
		return
	}

	var history []models.Diagnostic
	if err := q.Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_diagnostics"})
		return
	}

	c.JSON(http.StatusOK, history)
}

func hasKey(c *gin.Context, key string) bool {
	_, ok := c.Get(key)
	return ok
}
