package content

import (
	"math"
	"strings"
)

const (
	// WordsPerMinute is the assumed reading speed.
	WordsPerMinute = 200
	// DefaultReadingTime is shown for posts whose body could not be read.
	DefaultReadingTime = 5
)

// EstimateReadingTime returns whole minutes to read text, never less than 1.
func EstimateReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Round(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
