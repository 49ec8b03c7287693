package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oficinaplus/oficina-api/internal/middleware"
	"github.com/oficinaplus/oficina-api/internal/models"
	"github.com/oficinaplus/oficina-api/internal/timezone"
)

type TransactionHandler struct {
	db *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{db: db}
}

// --------- Requests ---------

type CreateTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=receita despesa"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date"` // YYYY-MM-DD, default hoje
}

// --------- Handlers ---------

func (h *TransactionHandler) List(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	q := h.db.Where("workshop_id = ?", workshopID)

	if txType := c.Query("type"); txType != "" {
		q = q.Where("type = ?", txType)
	}
	if from, to, ok := parsePeriod(c); ok {
		q = q.Where("date >= ? AND date < ?", from, to)
	}

	var transactions []models.Transaction
	if err := q.
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	date := timezone.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, timezone.Location(timezone.DefaultTimezone))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
			return
		}
		date = parsed
	}

	tx := models.Transaction{
		WorkshopID:  workshopID,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
	}

	if err := h.db.Create(&tx).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_transaction"})
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND workshop_id = ?", id, workshopID).
		Delete(&models.Transaction{})

	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_transaction"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Summary agrega receitas e despesas do período (mês corrente por padrão).
func (h *TransactionHandler) Summary(c *gin.Context) {
	workshopID := c.MustGet(middleware.ContextWorkshopID).(uint)

	from, to, ok := parsePeriod(c)
	if !ok {
		now := timezone.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0)
	}

	type row struct {
		Type  string
		Total float64
	}

	var rows []row
	if err := h.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("workshop_id = ? AND date >= ? AND date < ?", workshopID, from, to).
		Group("type").
		Scan(&rows).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_summarize"})
		return
	}

	var income, expense float64
	for _, r := range rows {
		switch r.Type {
		case "receita":
			income = r.Total
		case "despesa":
			expense = r.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    from.Format("2006-01-02"),
		"to":      to.AddDate(0, 0, -1).Format("2006-01-02"),
		"income":  income,
		"expense": expense,
		"balance": income - expense,
	})
}

func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}

	loc := timezone.Location(timezone.DefaultTimezone)

	from, err := time.ParseInLocation("2006-01-02", fromStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.ParseInLocation("2006-01-02", toStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	// intervalo fechado no início, aberto no fim
	return from, to.AddDate(0, 0, 1), true
}
