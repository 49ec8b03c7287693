package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/session"
)

// WebHandler renderiza as páginas navegáveis do portal. A lógica de
// acesso fica toda no RouteGuard; aqui só se escolhe o template.
type WebHandler struct {
	resolver *session.Resolver
}

func NewWebHandler(resolver *session.Resolver) *WebHandler {
	return &WebHandler{resolver: resolver}
}

func (h *WebHandler) page(title, page string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := h.resolver.Resolve(c)

		c.HTML(http.StatusOK, "base.html", gin.H{
			"Title":       title,
			"Page":        page,
			"LoggedIn":    sess != nil,
			"ProfileType": sess.ProfileType(),
		})
	}
}

func (h *WebHandler) Home() gin.HandlerFunc {
	return h.page("OficinaPlus", "home")
}

func (h *WebHandler) LoginWorkshop() gin.HandlerFunc {
	return h.page("Entrar — Oficina", "login-oficina")
}

func (h *WebHandler) LoginMotorist() gin.HandlerFunc {
	return h.page("Entrar — Motorista", "login-motorista")
}

func (h *WebHandler) SignupWorkshop() gin.HandlerFunc {
	return h.page("Criar conta — Oficina", "cadastro-oficina")
}

func (h *WebHandler) SignupMotorist() gin.HandlerFunc {
	return h.page("Criar conta — Motorista", "cadastro-motorista")
}

func (h *WebHandler) CompleteSignup() gin.HandlerFunc {
	return h.page("Completar cadastro", "completar-cadastro")
}

func (h *WebHandler) WorkshopPanel() gin.HandlerFunc {
	return h.page("Painel da oficina", "oficina")
}

func (h *WebHandler) MotoristPanel() gin.HandlerFunc {
	return h.page("Painel do motorista", "motorista")
}
