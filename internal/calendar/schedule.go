package calendar

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DEFAULT_POSTS_PER_WEEK = 3
	MAX_POSTS_PER_WEEK     = 21
)

// ParseFrequency converts "3/week" or "12/month" into posts per week. A month is
// counted as 4 weeks with at least one post, anything malformed yields
// DEFAULT_POSTS_PER_WEEK.
func ParseFrequency(frequency string) int {
	parts := strings.Split(strings.TrimSpace(frequency), "/")
	count, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || count <= 0 {
		return DEFAULT_POSTS_PER_WEEK
	}

	period := "week"
	if len(parts) >= 2 {
		period = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	switch period {
	case "week":
	case "month":
		count = max(1, count/4)
	default:
		return DEFAULT_POSTS_PER_WEEK
	}
	return min(count, MAX_POSTS_PER_WEEK)
}

// weekdays first, then sunday and saturday
var dayPreference = []int{1, 2, 3, 4, 5, 0, 6}

// DistributeAcrossWeek returns a day offset for each of `n` posts. Less than 7 posts
// land on distinct days, weekdays first. From 7 on every day gets one post and
// the rest continue into the following weeks.
func DistributeAcrossWeek(n int) []int {
	if n <= 0 {
		return []int{}
	}
	if n < len(dayPreference) {
		return append([]int{}, dayPreference[:n]...)
	}
	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = i
	}
	return offsets
}

var nameSeparators = []string{"|", " - ", " – ", ":", "•"}

const maxBrandNameLength = 30

// CleanBrandName reduces a page title to the brand name, ex. "AI Solutions | DCI" -> "DCI".
func CleanBrandName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Brand"
	}

	for _, sep := range nameSeparators {
		if !strings.Contains(raw, sep) {
			continue
		}
		shortest := ""
		for _, part := range strings.Split(raw, sep) {
			part = strings.TrimSpace(part)
			if utf8.RuneCountInString(part) <= 1 || strings.Contains(strings.ToLower(part), "home") {
				continue
			}
			if shortest == "" || utf8.RuneCountInString(part) < utf8.RuneCountInString(shortest) {
				shortest = part
			}
		}
		if shortest != "" {
			return shortest
		}
	}

	if utf8.RuneCountInString(raw) > maxBrandNameLength {
		return string([]rune(raw)[:maxBrandNameLength]) + "..."
	}
	return raw
}
