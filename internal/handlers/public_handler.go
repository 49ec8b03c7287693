package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/httpresp"
	"github.com/oficinaplus/oficina-api/internal/models"
)

// PublicHandler serve a vitrine de oficinas, sem autenticação.
type PublicHandler struct {
	db *gorm.DB
}

func NewPublicHandler(db *gorm.DB) *PublicHandler {
	return &PublicHandler{db: db}
}

type publicWorkshop struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	LogoURL     string  `json:"logo_url"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

func toPublic(shop models.Workshop) publicWorkshop {
	return publicWorkshop{
		Name:        shop.Name,
		Slug:        shop.Slug,
		City:        shop.City,
		State:       shop.State,
		LogoURL:     shop.LogoURL,
		Rating:      shop.Rating,
		RatingCount: shop.RatingCount,
	}
}

func (h *PublicHandler) ListWorkshops(c *gin.Context) {
	q := h.db.Where("public_listed = ?", true)

	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		q = q.Where("UPPER(state) = ?", strings.ToUpper(state))
	}

	var shops []models.Workshop
	if err := q.
		Order("rating DESC, rating_count DESC").
		Limit(100).
		Find(&shops).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_workshops"})
		return
	}

	out := make([]publicWorkshop, 0, len(shops))
	for _, shop := range shops {
		out = append(out, toPublic(shop))
	}

	httpresp.List(c, out)
}

func (h *PublicHandler) GetWorkshopBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var shop models.Workshop
	if err := h.db.
		Where("slug = ? AND public_listed = ?", slug, true).
		First(&shop).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "workshop_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_workshop"})
		return
	}

	out := toPublic(shop)

	c.JSON(http.StatusOK, gin.H{
		"workshop": out,
		"address":  shop.Address,
		"phone":    shop.Phone,
	})
}
