package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type WorkshopHandler struct {
	db *gorm.DB
}

func NewWorkshopHandler(db *gorm.DB) *WorkshopHandler {
	return &WorkshopHandler{db: db}
}

type UpdateWorkshopRequest struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PublicListed *bool   `json:"public_listed,omitempty"`
}

func (h *WorkshopHandler) GetMeWorkshop(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "workshop_not_found", "Oficina não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_workshop", "Erro ao buscar dados da oficina.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *WorkshopHandler) UpdateMeWorkshop(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	var shop models.Workshop
	if err := h.db.First(&shop, workshopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "workshop_not_found", "Oficina não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_workshop", "Erro ao buscar dados da oficina.")
		return
	}

	var req UpdateWorkshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.City != nil {
		shop.City = *req.City
	}
	if req.State != nil {
		shop.State = *req.State
	}
	if req.PublicListed != nil {
		shop.PublicListed = *req.PublicListed
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_workshop", "Erro ao salvar as configurações da oficina.")
		return
	}

	c.JSON(http.StatusOK, shop)
}
