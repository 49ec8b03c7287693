package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}
	userID := userIDVal.(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
	}

	var profile models.Profile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		resp["profile"] = gin.H{
			"id":   profile.ID,
			"type": profile.Type,
			"name": profile.Name,
		}

		switch profile.Type {
		case models.ProfileTypeWorkshop:
			var shop models.Workshop
			if err := h.db.Where("profile_id = ?", profile.ID).First(&shop).Error; err == nil {
				resp["workshop"] = shop
			}
		case models.ProfileTypeMotorist:
			var motorist models.Motorist
			if err := h.db.Where("profile_id = ?", profile.ID).First(&motorist).Error; err == nil {
				resp["motorist"] = motorist
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
