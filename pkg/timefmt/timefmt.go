// Package timefmt holds the time formatting shared between the API, the
// synthetic data generator and the leaderboard UI, so the formats cannot
// drift apart.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// NoTime is the sentinel completion time meaning "no completed run".
// Records carrying it always rank last.
const NoTime = "00:00:00"

// displayLayout matches the en-GB style timestamps the game client sends,
// e.g. "27/08/2026, 14:03:59".
const displayLayout = "02/01/2006, 15:04:05"

// FormatMillis renders a duration in milliseconds as HH:MM:SS.
func FormatMillis(ms int64) string {
	if ms <= 0 {
		return NoTime
	}

	total := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// Timestamp renders t as a display timestamp in the client's format.
func Timestamp(t time.Time) string {
	return t.Format(displayLayout)
}

// TimeOfDay extracts the time-only part from a display timestamp
// ("27/08/2026, 14:03:59" -> "14:03:59"). Strings without a date part are
// returned unchanged, mirroring the leaderboard's fallback.
func TimeOfDay(timestamp string) string {
	if _, after, found := strings.Cut(timestamp, ", "); found {
		return after
	}
	return timestamp
}
