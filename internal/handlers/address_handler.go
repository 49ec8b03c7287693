package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/integrations/cep"
)

type AddressHandler struct {
	client *cep.Client
}

func NewAddressHandler(client *cep.Client) *AddressHandler {
	return &AddressHandler{client: client}
}

// Search resolve CEP ou busca textual de endereço, conforme a entrada.
func (h *AddressHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_query"})
		return
	}

	results, err := h.client.Search(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, cep.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "address_lookup_failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}
