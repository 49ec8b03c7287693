package session

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/models"
)

const (
	AccessCookie  = "op_session"
	RefreshCookie = "op_refresh"
)

// ProfileSource resolve o perfil associado a um usuário autenticado.
// É uma interface para permitir dublês em teste.
type ProfileSource interface {
	ProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error)
}

type GormProfileSource struct {
	db *gorm.DB
}

func NewGormProfileSource(db *gorm.DB) *GormProfileSource {
	return &GormProfileSource{db: db}
}

func (s *GormProfileSource) ProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Session é o estado resolvido de uma requisição autenticada.
// Profile pode ser nil quando o usuário ainda não completou o cadastro.
type Session struct {
	UserID  uint
	Profile *models.Profile
}

// ProfileType devolve "" quando o perfil não foi resolvido.
func (s *Session) ProfileType() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.Type
}

type Resolver struct {
	secret   string
	store    *Store
	profiles ProfileSource
}

func NewResolver(secret string, store *Store, profiles ProfileSource) *Resolver {
	return &Resolver{secret: secret, store: store, profiles: profiles}
}

// Resolve tenta reconstruir a sessão a partir dos cookies. Se o token de
// acesso expirou mas o refresh token ainda vive no Redis, um novo token é
// emitido e reanexado na resposta — em qualquer rota que passe por aqui.
func (r *Resolver) Resolve(c *gin.Context) *Session {
	if token, err := c.Cookie(AccessCookie); err == nil && token != "" {
		if userID, err := ParseAccessToken(r.secret, token); err == nil {
			return r.build(c, userID)
		}
	}

	refresh, err := c.Cookie(RefreshCookie)
	if err != nil || refresh == "" {
		return nil
	}

	userID, err := r.store.UserID(c.Request.Context(), refresh)
	if err != nil {
		return nil
	}

	token, err := MintAccessToken(r.secret, userID, AccessTokenTTL)
	if err != nil {
		return nil
	}
	SetAccessCookie(c, token)

	return r.build(c, userID)
}

func (r *Resolver) build(c *gin.Context, userID uint) *Session {
	sess := &Session{UserID: userID}

	// Falha na busca do perfil não é fatal: a sessão segue com
	// tipo desconhecido e quem consome decide o que fazer.
	if profile, err := r.profiles.ProfileByUserID(c.Request.Context(), userID); err == nil {
		sess.Profile = profile
	}

	return sess
}

// SignOut invalida o refresh token e limpa os cookies da sessão.
func (r *Resolver) SignOut(c *gin.Context) {
	if refresh, err := c.Cookie(RefreshCookie); err == nil && refresh != "" {
		_ = r.store.Revoke(c.Request.Context(), refresh)
	}
	ClearCookies(c)
}

func SetAccessCookie(c *gin.Context, token string) {
	c.SetCookie(AccessCookie, token, int(AccessTokenTTL/time.Second), "/", "", false, true)
}

func SetRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(RefreshCookie, token, int(RefreshTokenTTL/time.Second), "/", "", false, true)
}

func ClearCookies(c *gin.Context) {
	c.SetCookie(AccessCookie, "", -1, "/", "", false, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", false, true)
}
