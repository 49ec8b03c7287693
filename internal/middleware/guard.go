package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/session"
)

// GuardKind classifica a regra de uma rota navegável.
type GuardKind int

const (
	// GuardProtected: sem sessão válida → redireciona para Redirect.
	GuardProtected GuardKind = iota
	// GuardAuthEntry: com sessão válida → redireciona para a home do
	// tipo de perfil; tipo desconhecido deixa passar.
	GuardAuthEntry
)

type GuardRule struct {
	Prefix   string
	Kind     GuardKind
	Redirect string
}

// DefaultGuardRules é a tabela declarativa de guarda das rotas web.
var DefaultGuardRules = []GuardRule{
	{Prefix: "/oficina", Kind: GuardProtected, Redirect: "/"},
	{Prefix: "/motorista", Kind: GuardProtected, Redirect: "/"},
	{Prefix: "/completar-cadastro", Kind: GuardProtected, Redirect: "/"},

	{Prefix: "/login-oficina", Kind: GuardAuthEntry},
	{Prefix: "/login-motorista", Kind: GuardAuthEntry},
	{Prefix: "/cadastro-oficina", Kind: GuardAuthEntry},
	{Prefix: "/cadastro-motorista", Kind: GuardAuthEntry},
}

var profileHome = map[string]string{
	models.ProfileTypeWorkshop: "/oficina",
	models.ProfileTypeMotorist: "/motorista",
}

// RouteGuard intercepta toda navegação web. O Resolve roda em todas as
// rotas, inclusive nas que passam direto, para que o cookie renovado
// seja propagado em qualquer resposta.
func RouteGuard(resolver *session.Resolver, rules []GuardRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := resolver.Resolve(c)

		rule, matched := matchRule(rules, c.Request.URL.Path)
		if !matched {
			c.Next()
			return
		}

		switch rule.Kind {
		case GuardProtected:
			if sess == nil {
				c.Redirect(http.StatusFound, rule.Redirect)
				c.Abort()
				return
			}

		case GuardAuthEntry:
			if sess != nil {
				if home, ok := profileHome[sess.ProfileType()]; ok {
					c.Redirect(http.StatusFound, home)
					c.Abort()
					return
				}
				// perfil ausente ou tipo desconhecido: segue o fluxo
			}
		}

		c.Next()
	}
}

func matchRule(rules []GuardRule, path string) (GuardRule, bool) {
	for _, rule := range rules {
		if path == rule.Prefix || strings.HasPrefix(path, rule.Prefix+"/") {
			return rule, true
		}
	}
	return GuardRule{}, false
}
