package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/storage"
)

// Limite do upload bruto, antes da conversão para WebP.
const maxUploadSize = 5 << 20 // 5 MB

type MediaHandler struct {
	db    *gorm.DB
	store *storage.MediaStore
}

// store pode ser nil quando o bucket não está configurado.
func NewMediaHandler(db *gorm.DB, store *storage.MediaStore) *MediaHandler {
	return &MediaHandler{db: db, store: store}
}

// UploadLogo recebe o logo da oficina (multipart "file"), converte e
// publica no bucket, e grava a URL no cadastro.
func (h *MediaHandler) UploadLogo(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	if h.store == nil {
		httperr.Internal(c, "media_not_configured", "Upload de imagens não está configurado.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo 'file'.")
		return
	}
	if fileHeader.Size > maxUploadSize {
		httperr.BadRequest(c, "file_too_large", "A imagem deve ter no máximo 5MB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo enviado.")
		return
	}
	defer file.Close()

	url, err := h.store.SaveImage(c.Request.Context(), "logos", file)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			httperr.BadRequest(c, "invalid_image", "Envie uma imagem JPEG ou PNG válida.")
			return
		}
		httperr.UpstreamUnavailable(c, "upload_failed", "Não foi possível salvar a imagem.")
		return
	}

	if err := h.db.Model(&models.Workshop{}).
		Where("id = ?", workshopID).
		Update("logo_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_workshop", "Erro ao gravar a URL do logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logo_url": url})
}
