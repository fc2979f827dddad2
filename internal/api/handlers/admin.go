package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/internal/service"
)

type AdminHandler struct {
	maintenanceService *service.MaintenanceService
}

func NewAdminHandler(maintenanceService *service.MaintenanceService) *AdminHandler {
	return &AdminHandler{
		maintenanceService: maintenanceService,
	}
}

// ReplaceName handles POST /api/replace-name. A zero-match rename is
// reported as its own outcome, not a generic success.
func (h *AdminHandler) ReplaceName(c *gin.Context) {
	var req models.RenameRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "findName and replaceName are required",
		})
		return
	}

	affected, err := h.maintenanceService.Rename(c.Request.Context(), req.FindName, req.ReplaceName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "findName and replaceName are required",
			})
		case errors.Is(err, service.ErrDuplicateName):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "The new name is already taken",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to replace name",
			})
		}
		return
	}

	if affected == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      fmt.Sprintf("No entry found with name %q", req.FindName),
			"rowsAffected": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Renamed %d entries", affected),
		"rowsAffected": affected,
	})
}

// ClearTable handles DELETE /api/clear-table.
func (h *AdminHandler) ClearTable(c *gin.Context) {
	var req models.ClearTableRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "tableName is required",
		})
		return
	}

	affected, err := h.maintenanceService.Clear(c.Request.Context(), req.TableName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProtectedTable), errors.Is(err, service.ErrUnknownTable):
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": fmt.Sprintf("Table %q cannot be cleared", req.TableName),
			})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "tableName is required",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to clear table",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Table %q cleared (%d entries)", req.TableName, affected),
	})
}

// LoadMockData handles POST /api/load-mock-data.
func (h *AdminHandler) LoadMockData(c *gin.Context) {
	var req models.LoadMockDataRequest
	// an empty body means the default batch size
	_ = c.ShouldBindJSON(&req)

	inserted, err := h.maintenanceService.LoadSynthetic(c.Request.Context(), req.Count)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Mock data collided with existing names, no rows inserted",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load mock data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Inserted %d mock entries", inserted),
		"inserted": inserted,
	})
}
