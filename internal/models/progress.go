package models

import (
	"encoding/json"
	"sort"

	"github.com/benni94/mazeChromeBE/pkg/timefmt"
)

// GameProgressRecord is one accepted run submission. The function details are
// opaque to the server: they are stored exactly as the client serialized
// them, and TotalFunctions is taken from the client rather than recomputed.
type GameProgressRecord struct {
	ID                      int64  `json:"id" db:"id"`
	Name                    string `json:"name" db:"name"`
	Level                   int    `json:"level" db:"level"`
	FunctionDetails         string `json:"functionDetails" db:"function_details"`
	TotalFunctions          int    `json:"totalFunctions" db:"total_functions"`
	CompletionTimeMs        int64  `json:"completionTimeMs" db:"completion_time_ms"`
	CompletionTimeFormatted string `json:"completionTimeFormatted" db:"completion_time_formatted"`
	Timestamp               string `json:"timestamp" db:"timestamp"`
}

// HasNoTime reports whether the record carries the "no completed run"
// sentinel, which always ranks last.
func (r *GameProgressRecord) HasNoTime() bool {
	return r.CompletionTimeFormatted == timefmt.NoTime
}

// SortRanked orders records in place by the leaderboard law: sentinel rows
// last, everything else by ascending completion time, id as the stable
// tie-break. The persisted ranked view produces the identical order.
func SortRanked(records []GameProgressRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.HasNoTime() != b.HasNoTime() {
			return !a.HasNoTime()
		}
		if a.CompletionTimeMs != b.CompletionTimeMs {
			return a.CompletionTimeMs < b.CompletionTimeMs
		}
		return a.ID < b.ID
	})
}

// SubmitRequest is the body of POST /api/data. FunctionDetails accepts
// whatever JSON the game client sends (object or pre-serialized string).
type SubmitRequest struct {
	Name                    string          `json:"name" binding:"required"`
	Level                   int             `json:"level"`
	FunctionDetails         json.RawMessage `json:"functionDetails"`
	TotalFunctions          int             `json:"totalFunctions"`
	CompletionTimeMs        int64           `json:"completionTimeMs"`
	CompletionTimeFormatted string          `json:"completionTimeFormatted" binding:"required"`
	Timestamp               string          `json:"timestamp" binding:"required"`
}

// Record converts the request into a record without an id.
func (req *SubmitRequest) Record() GameProgressRecord {
	details := string(req.FunctionDetails)
	if details == "" || details == "null" {
		details = "{}"
	}

	return GameProgressRecord{
		Name:                    req.Name,
		Level:                   req.Level,
		FunctionDetails:         details,
		TotalFunctions:          req.TotalFunctions,
		CompletionTimeMs:        req.CompletionTimeMs,
		CompletionTimeFormatted: req.CompletionTimeFormatted,
		Timestamp:               req.Timestamp,
	}
}

// RenameRequest is the body of POST /api/replace-name.
type RenameRequest struct {
	FindName    string `json:"findName" binding:"required"`
	ReplaceName string `json:"replaceName" binding:"required"`
}

// ClearTableRequest is the body of DELETE /api/clear-table.
type ClearTableRequest struct {
	TableName string `json:"tableName" binding:"required"`
}

// LockRequest is the body of POST /api/submissions-lock/set.
type LockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// LoadMockDataRequest is the body of POST /api/load-mock-data.
type LoadMockDataRequest struct {
	Count int `json:"count"`
}
