package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/audit"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/timezone"
)

type ServiceOrderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceOrderHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ServiceOrderHandler {
	return &ServiceOrderHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type ServiceOrderItemRequest struct {
	InventoryItemID *uint   `json:"inventory_item_id"`
	Description     string  `json:"description" binding:"required"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
}

type CreateServiceOrderRequest struct {
	ClientID    uint                      `json:"client_id" binding:"required"`
	VehicleID   uint                      `json:"vehicle_id" binding:"required"`
	Description string                    `json:"description"`
	LaborCost   float64                   `json:"labor_cost"`
	Discount    float64                   `json:"discount"`
	Items       []ServiceOrderItemRequest `json:"items"`
}

type UpdateServiceOrderRequest struct {
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	LaborCost   *float64 `json:"labor_cost,omitempty"`
	Discount    *float64 `json:"discount,omitempty"`
}

var serviceOrderStatuses = map[string]bool{
	"aberta":       true,
	"em_andamento": true,
	"aguardando":   true,
	"concluida":    true,
	"cancelada":    true,
}

// --------- Handlers ---------

func (h *ServiceOrderHandler) List(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	q := h.db.Where("workshop_id = ?", workshopID).
		Preload("Client").
		Preload("Vehicle").
		Preload("Items")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var orders []models.ServiceOrder
	if err := q.
		Order("created_at DESC").
		Find(&orders).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_service_orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *ServiceOrderHandler) Get(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	var order models.ServiceOrder
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		Preload("Client").
		Preload("Vehicle").
		Preload("Items").
		First(&order).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service_order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *ServiceOrderHandler) Create(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND workshop_id = ? AND client_id = ?", req.VehicleID, workshopID, req.ClientID).
		First(&vehicle).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
		return
	}

	now := timezone.Now()

	order := models.ServiceOrder{
		WorkshopID:  workshopID,
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		Status:      "aberta",
		Description: req.Description,
		LaborCost:   req.LaborCost,
		Discount:    req.Discount,
		OpenedAt:    now,
	}

	for _, item := range req.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		order.Items = append(order.Items, models.ServiceOrderItem{
			WorkshopID:      workshopID,
			InventoryItemID: item.InventoryItemID,
			Description:     item.Description,
			Quantity:        qty,
			UnitPrice:       item.UnitPrice,
			Total:           float64(qty) * item.UnitPrice,
		})
	}
	order.Total = orderTotal(&order)

	err := withOrderNumberRetry(func() error {
		return h.db.Transaction(func(tx *gorm.DB) error {
			order.Number = nextOrderNumber(tx, workshopID, now.Year())
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			// baixa de estoque dos itens vinculados
			for _, item := range order.Items {
				if item.InventoryItemID == nil {
					continue
				}
				if err := tx.Model(&models.InventoryItem{}).
					Where("id = ? AND workshop_id = ?", *item.InventoryItemID, workshopID).
					UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service_order"})
		return
	}

	orderID := order.ID
	h.audit.Dispatch(audit.Event{
		WorkshopID: workshopID,
		UserID:     &userID,
		Action:     "service_order_created",
		Entity:     "service_order",
		EntityID:   &orderID,
		Metadata:   gin.H{"number": order.Number, "client_id": order.ClientID},
	})

	c.JSON(http.StatusCreated, order)
}

func (h *ServiceOrderHandler) Update(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var order models.ServiceOrder
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		Preload("Items").
		First(&order).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service_order"})
		return
	}

	var req UpdateServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	closing := false

	if req.Status != nil {
		if !serviceOrderStatuses[*req.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
			return
		}
		if order.Status == "concluida" || order.Status == "cancelada" {
			c.JSON(http.StatusConflict, gin.H{"error": "service_order_closed"})
			return
		}
		closing = *req.Status == "concluida"
		order.Status = *req.Status
		if closing || *req.Status == "cancelada" {
			now := timezone.Now()
			order.ClosedAt = &now
		}
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	if req.LaborCost != nil {
		order.LaborCost = *req.LaborCost
	}
	if req.Discount != nil {
		order.Discount = *req.Discount
	}
	order.Total = orderTotal(&order)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		// OS concluída entra no caixa como receita
		if closing {
			orderID := order.ID
			return tx.Create(&models.Transaction{
				WorkshopID:     workshopID,
				Type:           "receita",
				Category:       "servico",
				Description:    "OS " + order.Number,
				Amount:         order.Total,
				ServiceOrderID: &orderID,
				Date:           timezone.Now(),
			}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service_order"})
		return
	}

	if closing {
		orderID := order.ID
		h.audit.Dispatch(audit.Event{
			WorkshopID: workshopID,
			UserID:     &userID,
			Action:     "service_order_completed",
			Entity:     "service_order",
			EntityID:   &orderID,
			Metadata:   gin.H{"number": order.Number, "total": order.Total},
		})
	}

	c.JSON(http.StatusOK, order)
}

func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	var order models.ServiceOrder
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&order).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_order_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service_order"})
		return
	}

	if order.Status != "aberta" && order.Status != "cancelada" {
		c.JSON(http.StatusConflict, gin.H{"error": "service_order_in_progress"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_order_id = ?", order.ID).
			Delete(&models.ServiceOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service_order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

const orderNumberAttempts = 3

// nextOrderNumber gera o número sequencial da OS no ano corrente
// (OS-2026-0042), contando dentro da transação de criação. O índice
// único (workshop_id, number) barra a corrida entre duas criações
// simultâneas na mesma oficina.
func nextOrderNumber(tx *gorm.DB, workshopID uint, year int) string {
	var count int64
	tx.Model(&models.ServiceOrder{}).
		Where("workshop_id = ? AND number LIKE ?", workshopID, fmt.Sprintf("OS-%d-%%", year)).
		Count(&count)

	return fmt.Sprintf("OS-%d-%04d", year, count+1)
}

// withOrderNumberRetry refaz a transação quando a numeração colide;
// qualquer outro erro sobe direto.
func withOrderNumberRetry(run func() error) error {
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if err = run(); !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func orderTotal(order *models.ServiceOrder) float64 {
	total := order.LaborCost - order.Discount
	for _, item := range order.Items {
		total += item.Total
	}
	if total < 0 {
		total = 0
	}
	return total
}
