package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	domain "github.com/oficinaplus/oficina-api/internal/domain/quote"
	"github.com/oficinaplus/oficina-api/internal/httperr"
	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/usecase/quote"
)

// TTL curto: o contador alimenta o badge do painel, pode atrasar
// alguns segundos sem problema.
const pendingCountTTL = 30 * time.Second

type QuoteHandler struct {
	repo    domain.Repository
	submit  *quote.SubmitQuote
	respond *quote.RespondQuote
	decide  *quote.DecideQuote
	rdb     *redis.Client
}

func NewQuoteHandler(
	repo domain.Repository,
	submit *quote.SubmitQuote,
	respond *quote.RespondQuote,
	decide *quote.DecideQuote,
	rdb *redis.Client,
) *QuoteHandler {
	return &QuoteHandler{
		repo:    repo,
		submit:  submit,
		respond: respond,
		decide:  decide,
		rdb:     rdb,
	}
}

// --------- Requests ---------

type SubmitQuoteRequest struct {
	WorkshopID         uint   `json:"workshop_id"`
	WorkshopSlug       string `json:"workshop_slug"`
	MotoristVehicleID  *uint  `json:"motorist_vehicle_id"`
	VehicleDescription string `json:"vehicle_description"`
	Plate              string `json:"plate"`
	Description        string `json:"description" binding:"required"`
}

type RespondQuoteRequest struct {
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Message string  `json:"message"`
}

// ======================================================
// LADO DA OFICINA
// ======================================================

func (h *QuoteHandler) ListForWorkshop(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	h.expireStale(c)

	quotes, err := h.repo.ListQuotesForWorkshop(c.Request.Context(), workshopID, c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_quotes"})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// PendingCount retorna o total de orçamentos aguardando resposta,
// com cache de 30s no Redis por oficina.
func (h *QuoteHandler) PendingCount(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	ctx := c.Request.Context()

	key := fmt.Sprintf("quotes:pending:%d", workshopID)

	if cached, err := h.rdb.Get(ctx, key).Result(); err == nil {
		if count, convErr := strconv.ParseInt(cached, 10, 64); convErr == nil {
			c.JSON(http.StatusOK, gin.H{"count": count, "cached": true})
			return
		}
	}

	count, err := h.repo.CountPendingQuotes(ctx, workshopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_count_quotes"})
		return
	}

	if err := h.rdb.Set(ctx, key, strconv.FormatInt(count, 10), pendingCountTTL).Err(); err != nil {
		log.Println("failed to cache pending count:", err)
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "cached": false})
}

func (h *QuoteHandler) Respond(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	quoteID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quote_id"})
		return
	}

	var req RespondQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	q, err := h.respond.Execute(c.Request.Context(), workshopID, userID, quoteID, req.Amount, req.Message)
	if err != nil {
		if httperr.IsBusinessError(err) {
			httperr.WriteBusiness(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_respond_quote"})
		return
	}

	h.invalidatePendingCount(c, workshopID)

	c.JSON(http.StatusOK, q)
}

// ======================================================
// LADO DO MOTORISTA
// ======================================================

func (h *QuoteHandler) Submit(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	var req SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	q, err := h.submit.Execute(c.Request.Context(), quote.SubmitQuoteInput{
		WorkshopID:         req.WorkshopID,
		WorkshopSlug:       req.WorkshopSlug,
		MotoristID:         motoristID,
		MotoristVehicleID:  req.MotoristVehicleID,
		VehicleDescription: req.VehicleDescription,
		Plate:              req.Plate,
		Description:        req.Description,
	})
	if err != nil {
		if httperr.IsBusinessError(err) {
			httperr.WriteBusiness(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_submit_quote"})
		return
	}

	h.invalidatePendingCount(c, q.WorkshopID)

	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) ListForMotorist(c *gin.Context) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	h.expireStale(c)

	quotes, err := h.repo.ListQuotesForMotorist(c.Request.Context(), motoristID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_quotes"})
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func (h *QuoteHandler) Accept(c *gin.Context) {
	h.decideQuote(c, true)
}

func (h *QuoteHandler) Reject(c *gin.Context) {
	h.decideQuote(c, false)
}

func (h *QuoteHandler) decideQuote(c *gin.Context, accept bool) {
	motoristID := c.MustGet(middleware.ContextMotoristID).(uint)

	quoteID, err := parseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quote_id"})
		return
	}

	q, err := h.decide.Execute(c.Request.Context(), motoristID, quoteID, accept)
	if err != nil {
		if httperr.IsBusinessError(err) {
			httperr.WriteBusiness(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_decide_quote"})
		return
	}

	c.JSON(http.StatusOK, q)
}

// ======================================================
// Helpers
// ======================================================

// expireStale marca como expirados os pedidos pendentes que passaram
// do prazo. Roda de carona nas listagens em vez de em um cron.
func (h *QuoteHandler) expireStale(c *gin.Context) {
	if n, err := h.repo.ExpireStaleQuotes(c.Request.Context()); err != nil {
		log.Println("failed to expire stale quotes:", err)
	} else if n > 0 {
		log.Printf("expired %d stale quotes", n)
	}
}

func (h *QuoteHandler) invalidatePendingCount(c *gin.Context, workshopID uint) {
	key := fmt.Sprintf("quotes:pending:%d", workshopID)
	if err := h.rdb.Del(c.Request.Context(), key).Err(); err != nil {
		log.Println("failed to invalidate pending count:", err)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
