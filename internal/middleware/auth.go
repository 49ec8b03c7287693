package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/session"
)

const (
	ContextUserID      = "userID"
	ContextProfileID   = "profileID"
	ContextProfileType = "profileType"
	ContextWorkshopID  = "workshopID"
	ContextMotoristID  = "motoristID"
)

// RoleSource resolve a linha de papel (oficina ou motorista) de um
// perfil. Interface para permitir dublês em teste.
type RoleSource interface {
	WorkshopIDByProfile(ctx context.Context, profileID uint) (uint, error)
	MotoristIDByProfile(ctx context.Context, profileID uint) (uint, error)
}

type GormRoleSource struct {
	db *gorm.DB
}

func NewGormRoleSource(db *gorm.DB) *GormRoleSource {
	return &GormRoleSource{db: db}
}

func (s *GormRoleSource) WorkshopIDByProfile(ctx context.Context, profileID uint) (uint, error) {
	var shop models.Workshop
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&shop).Error; err != nil {
		return 0, err
	}
	return shop.ID, nil
}

func (s *GormRoleSource) MotoristIDByProfile(ctx context.Context, profileID uint) (uint, error) {
	var motorist models.Motorist
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&motorist).Error; err != nil {
		return 0, err
	}
	return motorist.ID, nil
}

// AuthMiddleware aceita Bearer token (clientes de API) ou o cookie de
// sessão (portal web). Só valida identidade; papel fica a cargo de
// ResolveRole/RequireWorkshop/RequireMotorist.
func AuthMiddleware(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			if cookie, err := c.Cookie(session.AccessCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_credentials"})
			return
		}

		userID, err := session.ParseAccessToken(cfg.JWTSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, userID)

		var profile models.Profile
		if err := db.WithContext(c.Request.Context()).
			Where("user_id = ?", userID).
			First(&profile).Error; err == nil {
			c.Set(ContextProfileID, profile.ID)
			c.Set(ContextProfileType, profile.Type)
		}

		c.Next()
	}
}

// ResolveRole injeta workshop_id ou motorist_id conforme o tipo do
// perfil da sessão. Diferente de RequireWorkshop/RequireMotorist,
// aceita os dois lados e serve às rotas compartilhadas, como o
// diagnóstico por IA.
func ResolveRole(roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := c.Get(ContextProfileID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile_required"})
			return
		}

		switch c.GetString(ContextProfileType) {
		case models.ProfileTypeWorkshop:
			id, err := roles.WorkshopIDByProfile(c.Request.Context(), profileID.(uint))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "workshop_not_found"})
				return
			}
			c.Set(ContextWorkshopID, id)

		case models.ProfileTypeMotorist:
			id, err := roles.MotoristIDByProfile(c.Request.Context(), profileID.(uint))
			if err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "motorist_not_found"})
				return
			}
			c.Set(ContextMotoristID, id)

		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile_required"})
			return
		}

		c.Next()
	}
}

// RequireWorkshop garante que a sessão pertence a uma oficina e injeta
// o workshop_id no contexto. Todo dado de oficina é filtrado por ele.
func RequireWorkshop(roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileType, _ := c.Get(ContextProfileType)
		if profileType != models.ProfileTypeWorkshop {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "workshop_profile_required"})
			return
		}

		profileID := c.MustGet(ContextProfileID).(uint)

		id, err := roles.WorkshopIDByProfile(c.Request.Context(), profileID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "workshop_not_found"})
			return
		}

		c.Set(ContextWorkshopID, id)
		c.Next()
	}
}

func RequireMotorist(roles RoleSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileType, _ := c.Get(ContextProfileType)
		if profileType != models.ProfileTypeMotorist {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "motorist_profile_required"})
			return
		}

		profileID := c.MustGet(ContextProfileID).(uint)

		id, err := roles.MotoristIDByProfile(c.Request.Context(), profileID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "motorist_not_found"})
			return
		}

		c.Set(ContextMotoristID, id)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
