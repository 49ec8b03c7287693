package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/session"
	"github.com/oficinaplus/oficina-api/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	store    *session.Store
	resolver *session.Resolver
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, store *session.Store, resolver *session.Resolver) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, store: store, resolver: resolver}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register cria só a identidade. O perfil (oficina ou motorista) é
// provisionado em seguida via /api/create-profile — é esse segundo
// passo que pode correr antes da sessão chegar ao cliente.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.issueSession(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.issueSession(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_session"})
		return
	}

	profileType := ""
	var profile models.Profile
	if err := h.db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		profileType = profile.Type
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		},
		"profile_type": profileType,
		"token":        token,
	})
}

// Logout invalida a sessão e leva de volta à entrada de login.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.resolver.SignOut(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/"})
}

func (h *AuthHandler) issueSession(c *gin.Context, userID uint) (string, error) {
	token, err := session.MintAccessToken(h.config.JWTSecret, userID, session.AccessTokenTTL)
	if err != nil {
		return "", err
	}

	refresh, err := h.store.Issue(c.Request.Context(), userID)
	if err != nil {
		return "", err
	}

	session.SetAccessCookie(c, token)
	session.SetRefreshCookie(c, refresh)
	return token, nil
}
