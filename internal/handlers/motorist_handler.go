package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/integrations/fipe"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

// MotoristHandler cobre a garagem do motorista: veículos próprios e
// histórico de manutenção.
type MotoristHandler struct {
	db *gorm.DB
}

func NewMotoristHandler(db *gorm.DB) *MotoristHandler {
	return &MotoristHandler{db: db}
}

// --------- Requests ---------

type CreateMotoristVehicleRequest struct {
	Plate string `json:"plate" binding:"required"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year"`
	Color string `json:"color"`
	Km    int    `json:"km"`
}

type UpdateMotoristVehicleRequest struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *string `json:"year,omitempty"`
	Color *string `json:"color,omitempty"`
	Km    *int    `json:"km,omitempty"`
}

type CreateMaintenanceRequest struct {
	MotoristVehicleID uint    `json:"motorist_vehicle_id" binding:"required"`
	ServiceType       string  `json:"service_type"`
	Description       string  `json:"description" binding:"required"`
	WorkshopName      string  `json:"workshop_name"`
	ServiceDate       string  `json:"service_date" binding:"required"` // YYYY-MM-DD
	Mileage           int     `json:"mileage"`
	Cost              float64 `json:"cost"`
}

// --------- Veículos ---------

func (h *MotoristHandler) ListVehicles(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	var vehicles []models.MotoristVehicle
	if err := h.db.
		Where("motorist_id = ?", motoristID).
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *MotoristHandler) CreateVehicle(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	var req CreateMotoristVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !fipe.IsValidPlate(req.Plate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_plate"})
		return
	}

	vehicle := models.MotoristVehicle{
		MotoristID: motoristID,
		Plate:      fipe.FormatPlate(req.Plate),
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		Color:      req.Color,
		Km:         req.Km,
	}

	if err := h.db.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_vehicle"})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *MotoristHandler) UpdateVehicle(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)
	id := c.Param("id")

	var vehicle models.MotoristVehicle
	if err := h.db.
		Where("id = ? AND motorist_id = ?", id, motoristID).
		First(&vehicle).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_vehicle"})
		return
	}

	var req UpdateMotoristVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.Km != nil {
		vehicle.Km = *req.Km
	}

	if err := h.db.Save(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_vehicle"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *MotoristHandler) DeleteVehicle(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)
	id := c.Param("id")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("id = ? AND motorist_id = ?", id, motoristID).
			Delete(&models.MotoristVehicle{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.
			Where("motorist_vehicle_id = ? AND motorist_id = ?", id, motoristID).
			Delete(&models.MaintenanceHistory{}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_vehicle"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------- Histórico de manutenção ---------

func (h *MotoristHandler) ListMaintenance(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	q := h.db.Where("motorist_id = ?", motoristID)

	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		q = q.Where("motorist_vehicle_id = ?", vehicleID)
	}

	var history []models.MaintenanceHistory
	if err := q.
		Order("service_date DESC").
		Find(&history).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_maintenance"})
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *MotoristHandler) CreateMaintenance(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	serviceDate, err := time.Parse("2006-01-02", req.ServiceDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_service_date"})
		return
	}

	var count int64
	h.db.Model(&models.MotoristVehicle{}).
		Where("id = ? AND motorist_id = ?", req.MotoristVehicleID, motoristID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
		return
	}

	entry := models.MaintenanceHistory{
		MotoristID:        motoristID,
		MotoristVehicleID: req.MotoristVehicleID,
		ServiceType:       req.ServiceType,
		Description:       req.Description,
		WorkshopName:      req.WorkshopName,
		ServiceDate:       serviceDate,
		Mileage:           req.Mileage,
		Cost:              req.Cost,
	}

	if err := h.db.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_maintenance"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *MotoristHandler) DeleteMaintenance(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND motorist_id = ?", id, motoristID).
		Delete(&models.MaintenanceHistory{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_maintenance"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "maintenance_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
