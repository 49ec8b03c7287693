package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewRequest struct {
	WorkshopID uint   `json:"workshop_id" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// Create registra a avaliação e recalcula os agregados da oficina
// na mesma transação, para o rating exibido nunca divergir.
func (h *ReviewHandler) Create(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var shop models.Workshop
	if err := h.db.First(&shop, req.WorkshopID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workshop_not_found"})
		return
	}

	// só avalia quem teve orçamento aceito na oficina
	var accepted int64
	h.db.Model(&models.Quote{}).
		Where("workshop_id = ? AND motorist_id = ? AND status = ?", shop.ID, motoristID, "accepted").
		Count(&accepted)
	if accepted == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "no_accepted_quote"})
		return
	}

	var alreadyReviewed int64
	h.db.Model(&models.Review{}).
		Where("workshop_id = ? AND motorist_id = ?", shop.ID, motoristID).
		Count(&alreadyReviewed)
	if alreadyReviewed > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "already_reviewed"})
		return
	}

	review := models.Review{
		WorkshopID: shop.ID,
		MotoristID: motoristID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("workshop_id = ?", shop.ID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Workshop{}).
			Where("id = ?", shop.ID).
			Updates(map[string]any{
				"rating":       agg.Avg,
				"rating_count": agg.Count,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) ListForWorkshop(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Workshop
	if err := h.db.Where("slug = ?", slug).First(&shop).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workshop_not_found"})
		return
	}

	var reviews []models.Review
	if err := h.db.
		Where("workshop_id = ?", shop.ID).
		Preload("Motorist").
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rating":       shop.Rating,
		"rating_count": shop.RatingCount,
		"reviews":      reviews,
	})
}
