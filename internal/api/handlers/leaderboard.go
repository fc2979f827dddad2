package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/internal/service"
	"github.com/benni94/mazeChromeBE/pkg/timefmt"
)

type LeaderboardHandler struct {
	submissionService *service.SubmissionService
}

func NewLeaderboardHandler(submissionService *service.SubmissionService) *LeaderboardHandler {
	return &LeaderboardHandler{
		submissionService: submissionService,
	}
}

// rankedEntry is a record plus the derived time-of-day column the
// leaderboard displays.
type rankedEntry struct {
	models.GameProgressRecord
	TimeOnly string `json:"timeOnly"`
}

// List handles GET /api/gamedata: every record in ranked order.
func (h *LeaderboardHandler) List(c *gin.Context) {
	records, err := h.submissionService.ListRanked(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load leaderboard",
		})
		return
	}

	entries := make([]rankedEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rankedEntry{
			GameProgressRecord: rec,
			TimeOnly:           timefmt.TimeOfDay(rec.Timestamp),
		})
	}

	c.JSON(http.StatusOK, entries)
}
