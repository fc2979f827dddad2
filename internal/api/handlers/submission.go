package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/internal/service"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// Submit handles POST /api/data: one game run result from the extension.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req models.SubmitRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body: " + err.Error(),
		})
		return
	}

	id, err := h.submissionService.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionsLocked):
			c.JSON(http.StatusLocked, gin.H{
				"success": false,
				"message": "Submissions are currently locked",
			})
		case errors.Is(err, service.ErrDuplicateName):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "This name is already taken",
			})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Missing required fields",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to store data",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Data received",
		"id":      id,
	})
}
