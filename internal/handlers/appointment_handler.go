package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/timezone"
)

type AppointmentHandler struct {
	db *gorm.DB
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	VehicleID   *uint  `json:"vehicle_id"`
	ScheduledAt string `json:"scheduled_at" binding:"required"` // RFC3339
	Notes       string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ScheduledAt *string `json:"scheduled_at,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) List(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	q := h.db.Where("workshop_id = ?", workshopID).Preload("Client")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if day := c.Query("date"); day != "" {
		loc := timezone.Location(timezone.DefaultTimezone)
		start, err := time.ParseInLocation("2006-01-02", day, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}
		q = q.Where("scheduled_at >= ? AND scheduled_at < ?", start, start.AddDate(0, 0, 1))
	}

	var appointments []models.Appointment
	if err := q.
		Order("scheduled_at ASC").
		Find(&appointments).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_appointments"})
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_scheduled_at"})
		return
	}
	if scheduledAt.Before(timezone.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at_in_past"})
		return
	}

	var count int64
	h.db.Model(&models.Client{}).
		Where("id = ? AND workshop_id = ?", req.ClientID, workshopID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	appointment := models.Appointment{
		WorkshopID:  workshopID,
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		ScheduledAt: scheduledAt,
		Status:      "agendado",
		Notes:       req.Notes,
	}

	if err := h.db.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_appointment"})
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&appointment).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_appointment"})
		return
	}

	if appointment.Status != "agendado" {
		c.JSON(http.StatusConflict, gin.H{"error": "appointment_closed"})
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_scheduled_at"})
			return
		}
		appointment.ScheduledAt = scheduledAt
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := h.db.Save(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_appointment"})
		return
	}

	c.JSON(http.StatusOK, appointment)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.close(c, "cancelado")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.close(c, "concluido")
}

func (h *AppointmentHandler) close(c *gin.Context, status string) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	var appointment models.Appointment
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&appointment).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_appointment"})
		return
	}

	if appointment.Status != "agendado" {
		c.JSON(http.StatusConflict, gin.H{"error": "appointment_closed"})
		return
	}

	now := timezone.Now()
	appointment.Status = status
	switch status {
	case "cancelado":
		appointment.CancelledAt = &now
	case "concluido":
		appointment.CompletedAt = &now
	}

	if err := h.db.Save(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_appointment"})
		return
	}

	c.JSON(http.StatusOK, appointment)
}
