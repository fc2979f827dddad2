package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/internal/service"
)

type BackupHandler struct {
	backupService *service.BackupService
}

func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
	}
}

// Start handles POST /api/backup-service/start.
func (h *BackupHandler) Start(c *gin.Context) {
	if err := h.backupService.Start(); err != nil {
		if errors.Is(err, service.ErrBackupAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Backup service is already running",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to start backup service: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Backup service started",
	})
}

// Stop handles POST /api/backup-service/stop.
func (h *BackupHandler) Stop(c *gin.Context) {
	if err := h.backupService.Stop(); err != nil {
		if errors.Is(err, service.ErrBackupNotRunning) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "Backup service is not running",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to stop backup service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Backup service stopped",
	})
}

// Status handles GET /api/backup-service/status.
func (h *BackupHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  h.backupService.Status(),
	})
}

// Restore handles POST /api/restore-db.
func (h *BackupHandler) Restore(c *gin.Context) {
	if err := h.backupService.Restore(); err != nil {
		if errors.Is(err, service.ErrBackupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "No backup snapshot found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to restore database: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database restored from backup",
	})
}
