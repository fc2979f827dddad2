package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/pkg/timefmt"
)

// mazeCommands is the game's command vocabulary used for mock runs.
var mazeCommands = []string{
	"moveForward",
	"turnLeft",
	"turnRight",
	"openDoor",
	"repeat",
	"ifPath",
}

// generateSynthetic builds n schema-valid mock records. Names carry an index
// plus a random tag so a batch never collides with itself; totalFunctions is
// always the sum of the generated per-function counts, and the formatted
// completion time always matches its millisecond value.
func generateSynthetic(rng *rand.Rand, n int, now time.Time) []models.GameProgressRecord {
	records := make([]models.GameProgressRecord, 0, n)

	for i := 0; i < n; i++ {
		details := make(map[string]int)
		total := 0
		for _, cmd := range mazeCommands {
			if rng.Intn(2) == 0 {
				continue
			}
			count := 1 + rng.Intn(5)
			details[cmd] = count
			total += count
		}
		if total == 0 {
			details["moveForward"] = 1
			total = 1
		}

		serialized, _ := json.Marshal(details)

		// between 30s and 2h
		ms := int64(30_000 + rng.Intn(7_170_000))

		// a random instant within the last 24h
		at := now.Add(-time.Duration(rng.Intn(86_400)) * time.Second)

		records = append(records, models.GameProgressRecord{
			Name:                    fmt.Sprintf("Testspieler %d-%04d", i+1, rng.Intn(10_000)),
			Level:                   1 + rng.Intn(10),
			FunctionDetails:         string(serialized),
			TotalFunctions:          total,
			CompletionTimeMs:        ms,
			CompletionTimeFormatted: timefmt.FormatMillis(ms),
			Timestamp:               timefmt.Timestamp(at),
		})
	}

	return records
}
