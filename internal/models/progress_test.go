package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortRanked(t *testing.T) {
	records := []GameProgressRecord{
		{ID: 1, Name: "NoTime", CompletionTimeMs: 0, CompletionTimeFormatted: "00:00:00"},
		{ID: 2, Name: "Slow", CompletionTimeMs: 90000, CompletionTimeFormatted: "00:01:30"},
		{ID: 3, Name: "Fast", CompletionTimeMs: 30000, CompletionTimeFormatted: "00:00:30"},
		{ID: 4, Name: "AlsoNoTime", CompletionTimeMs: 0, CompletionTimeFormatted: "00:00:00"},
		{ID: 5, Name: "SameAsFast", CompletionTimeMs: 30000, CompletionTimeFormatted: "00:00:30"},
	}

	SortRanked(records)

	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}

	// sentinel rows strictly after every timed row, ties broken by id
	assert.Equal(t, []string{"Fast", "SameAsFast", "Slow", "NoTime", "AlsoNoTime"}, names)
}

func TestSortRankedAllSentinels(t *testing.T) {
	records := []GameProgressRecord{
		{ID: 2, CompletionTimeFormatted: "00:00:00"},
		{ID: 1, CompletionTimeFormatted: "00:00:00"},
	}

	SortRanked(records)

	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
}

func TestSubmitRequestRecord(t *testing.T) {
	req := SubmitRequest{
		Name:                    "Maja",
		Level:                   7,
		FunctionDetails:         json.RawMessage(`{"moveForward":4,"turnLeft":2}`),
		TotalFunctions:          6,
		CompletionTimeMs:        754000,
		CompletionTimeFormatted: "00:12:34",
		Timestamp:               "27/08/2026, 14:03:59",
	}

	rec := req.Record()

	assert.Equal(t, `{"moveForward":4,"turnLeft":2}`, rec.FunctionDetails)
	assert.Equal(t, 6, rec.TotalFunctions)
	assert.False(t, rec.HasNoTime())
}

func TestSubmitRequestRecordEmptyDetails(t *testing.T) {
	req := SubmitRequest{Name: "Maja", CompletionTimeFormatted: "00:00:00"}

	rec := req.Record()

	assert.Equal(t, "{}", rec.FunctionDetails)
	assert.True(t, rec.HasNoTime())
}
