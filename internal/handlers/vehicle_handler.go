package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/integrations/fipe"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type VehicleHandler struct {
	db *gorm.DB
}

func NewVehicleHandler(db *gorm.DB) *VehicleHandler {
	return &VehicleHandler{db: db}
}

// --------- Requests ---------

type CreateVehicleRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Plate    string `json:"plate" binding:"required"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     string `json:"year"`
	Color    string `json:"color"`
	Km       int    `json:"km"`
}

type UpdateVehicleRequest struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *string `json:"year,omitempty"`
	Color *string `json:"color,omitempty"`
	Km    *int    `json:"km,omitempty"`
}

// --------- Handlers ---------

func (h *VehicleHandler) List(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	q := h.db.Where("workshop_id = ?", workshopID).Preload("Client")

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var vehicles []models.Vehicle
	if err := q.
		Order("created_at DESC").
		Find(&vehicles).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_vehicles"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehicleHandler) Create(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	var req CreateVehicleRequest
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

	// o cliente precisa pertencer à mesma oficina
	var count int64
	h.db.Model(&models.Client{}).
		Where("id = ? AND workshop_id = ?", req.ClientID, workshopID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
		return
	}

	vehicle := models.Vehicle{
		WorkshopID: workshopID,
		ClientID:   req.ClientID,
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

func (h *VehicleHandler) Update(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	var vehicle models.Vehicle
	if err := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		First(&vehicle).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_vehicle"})
		return
	}

	var req UpdateVehicleRequest
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

func (h *VehicleHandler) Delete(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		Delete(&models.Vehicle{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_vehicle"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
