package content

import (
	"fmt"
	"strings"
)

const wordsPerMinute = 200

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadTimeMinutes is ceil(words / 200); empty content reads in 0 minutes.
func ReadTimeMinutes(s string) int {
	words := WordCount(s)
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func ReadTime(s string) string {
	return fmt.Sprintf("%d min read", ReadTimeMinutes(s))
}
