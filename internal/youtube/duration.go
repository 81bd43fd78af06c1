package youtube

import (
	"regexp"
	"strconv"
)

var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISO8601Duration converts a contentDetails duration like "PT1H2M30S"
// into whole seconds. Every component is optional. Anything that does not
// match the PT form yields 0 rather than an error.
func ParseISO8601Duration(s string) int {
	match := iso8601Duration.FindStringSubmatch(s)
	if match == nil {
		return 0
	}

	seconds := 0
	if match[1] != "" {
		hours, _ := strconv.Atoi(match[1])
		seconds += hours * 3600
	}
	if match[2] != "" {
		minutes, _ := strconv.Atoi(match[2])
		seconds += minutes * 60
	}
	if match[3] != "" {
		secs, _ := strconv.Atoi(match[3])
		seconds += secs
	}

	return seconds
}
