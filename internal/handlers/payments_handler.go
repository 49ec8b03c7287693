package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/integrations/billing"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type PaymentsHandler struct {
	db      *gorm.DB
	gateway *billing.Gateway
}

// gateway pode ser nil quando o token do Mercado Pago não está
// configurado.
func NewPaymentsHandler(db *gorm.DB, gateway *billing.Gateway) *PaymentsHandler {
	return &PaymentsHandler{db: db, gateway: gateway}
}

// CreateSubscription abre a assinatura do plano pro no Mercado Pago e
// guarda o id devolvido. Se a gravação local falhar depois do provedor
// aceitar, o init_point ainda é devolvido: o checkout vale mais que o
// registro, que pode ser reconciliado depois.
func (h *PaymentsHandler) CreateSubscription(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if h.gateway == nil {
		httperr.Internal(c, "billing_not_configured", "Pagamentos não estão configurados.")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "failed_to_get_user", "Erro ao buscar dados do usuário.")
		return
	}

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		httperr.NotFound(c, "workshop_not_found", "Oficina não encontrada.")
		return
	}

	if shop.PlanType == billing.PlanPro {
		httperr.Write(c, http.StatusConflict, "already_subscribed", "A oficina já está no plano pro.")
		return
	}

	sub, err := h.gateway.CreateSubscription(c.Request.Context(), shop.ID, user.Email)
	if err != nil {
		if billing.IsGatewayUnauthorized(err) {
			httperr.Internal(c, "billing_auth_failed", "Credenciais do provedor de pagamento rejeitadas.")
			return
		}
		httperr.UpstreamUnavailable(c, "billing_unavailable", "Não foi possível iniciar a assinatura.")
		return
	}

	if err := h.db.Model(&models.Workshop{}).
		Where("id = ?", shop.ID).
		Update("subscription_id", sub.ID).Error; err != nil {
		log.Println("failed to persist subscription id:", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"subscriptionId": sub.ID,
		"initPoint":      sub.InitPoint,
	})
}

// SubscriptionStatus informa plano, trial e assinatura em aberto.
func (h *PaymentsHandler) SubscriptionStatus(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		httperr.NotFound(c, "workshop_not_found", "Oficina não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan_type":       shop.PlanType,
		"trial_ends_at":   shop.TrialEndsAt,
		"subscription_id": shop.SubscriptionID,
	})
}
