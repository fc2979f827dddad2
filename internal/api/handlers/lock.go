package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/internal/service"
)

type LockHandler struct {
	lockService *service.LockService
}

func NewLockHandler(lockService *service.LockService) *LockHandler {
	return &LockHandler{
		lockService: lockService,
	}
}

// Status handles GET /api/submissions-lock/status.
func (h *LockHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"locked":  h.lockService.IsLocked(),
	})
}

// Set handles POST /api/submissions-lock/set.
func (h *LockHandler) Set(c *gin.Context) {
	var req models.LockRequest

	if err := c.ShouldBindJSON(&req); err != nil || req.Locked == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "locked (bool) is required",
		})
		return
	}

	previous := h.lockService.SetLocked(*req.Locked)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"locked":   *req.Locked,
		"previous": previous,
	})
}
