package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oficinaplus/oficina-api/internal/integrations/fipe"
)

type PlateHandler struct {
	client *fipe.Client
}

func NewPlateHandler(client *fipe.Client) *PlateHandler {
	return &PlateHandler{client: client}
}

// Lookup consulta os dados do veículo pela placa. O formato de erro é
// fixo: o front exibe a mensagem como veio.
func (h *PlateHandler) Lookup(c *gin.Context) {
	plate := c.Query("plate")
	if plate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe a placa"})
		return
	}

	info, err := h.client.Lookup(c.Request.Context(), plate)
	if err != nil {
		if errors.Is(err, fipe.ErrPlateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Placa não encontrada"})
			return
		}
		log.Println("plate lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao consultar placa"})
		return
	}

	c.JSON(http.StatusOK, info)
}
