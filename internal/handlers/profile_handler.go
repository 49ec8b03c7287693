package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/config"
	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/session"
	"github.com/oficinaplus/oficina-api/internal/usecase/provision"
)

type ProfileHandler struct {
	uc       *provision.CreateProfile
	config   *config.Config
	resolver *session.Resolver
}

func NewProfileHandler(uc *provision.CreateProfile, cfg *config.Config, resolver *session.Resolver) *ProfileHandler {
	return &ProfileHandler{uc: uc, config: cfg, resolver: resolver}
}

type CreateProfileRequest struct {
	UserType string `json:"user_type" binding:"required,oneof=oficina motorista"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// CreateProfile provisiona perfil + registro de papel para a
// identidade atual. Sem sessão, cai no lookup por e-mail — cobre a
// corrida em que o cliente chama isto antes do cookie chegar.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	in := provision.Input{
		Email:    req.Email,
		Name:     req.Name,
		UserType: req.UserType,
	}

	if sess := h.resolver.Resolve(c); sess != nil {
		in.UserID = sess.UserID
	}

	if err := h.uc.Execute(c.Request.Context(), in); err != nil {
		switch {
		case errors.Is(err, provision.ErrUnauthenticated):
			httperr.Unauthorized(c, "unauthenticated", "Sessão ou e-mail obrigatórios.")
		case errors.Is(err, provision.ErrUserNotFound):
			httperr.NotFound(c, "user_not_found", "Nenhum usuário para o e-mail informado.")
		default:
			httperr.Internal(c, "failed_to_create_profile", "Erro ao criar o perfil.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
