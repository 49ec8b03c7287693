package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/oficinaplus/oficina-api/internal/middleware"
)

// Flags de onboarding por usuário (tour visto, dica dispensada etc).
// Vivem só no Redis: perder é aceitável, o front refaz o onboarding.
var allowedFlags = map[string]bool{
	"onboarding_done":  true,
	"tour_dismissed":   true,
	"welcome_seen":     true,
	"trial_banner_off": true,
}

type FlagsHandler struct {
	rdb *redis.Client
}

func NewFlagsHandler(rdb *redis.Client) *FlagsHandler {
	return &FlagsHandler{rdb: rdb}
}

func flagKey(userID uint, name string) string {
	return fmt.Sprintf("flags:%d:%s", userID, name)
}

func (h *FlagsHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	name := c.Param("key")

	if !allowedFlags[name] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_flag"})
		return
	}

	val, err := h.rdb.Get(c.Request.Context(), flagKey(userID, name)).Result()
	if err == redis.Nil {
		c.JSON(http.StatusOK, gin.H{"key": name, "value": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_flag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": name, "value": val == "1"})
}

type SetFlagRequest struct {
	Value bool `json:"value"`
}

func (h *FlagsHandler) Set(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	name := c.Param("key")

	if !allowedFlags[name] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_flag"})
		return
	}

	var req SetFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	val := "0"
	if req.Value {
		val = "1"
	}

	if err := h.rdb.Set(c.Request.Context(), flagKey(userID, name), val, 0).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_set_flag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": name, "value": req.Value})
}
