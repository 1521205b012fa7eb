package ranking

import (
	"fmt"
	"regexp"
	"strconv"

	"clubhub/internal/apperrors"
)

// Lap times travel as "MM:SS.mmm": two-digit minutes, two-digit seconds,
// three-digit milliseconds. Anything else is rejected.
var lapTimePattern = regexp.MustCompile(`^(\d{2}):(\d{2})\.(\d{3})$`)

// ParseLapTime converts a fixed-width "MM:SS.mmm" string to milliseconds.
func ParseLapTime(s string) (int64, error) {
	m := lapTimePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("invalid lap time %q, expected MM:SS.mmm", s))
	}

	mm, _ := strconv.ParseInt(m[1], 10, 64)
	ss, _ := strconv.ParseInt(m[2], 10, 64)
	ms, _ := strconv.ParseInt(m[3], 10, 64)

	return mm*60_000 + ss*1_000 + ms, nil
}

// FormatLapTime renders milliseconds as zero-padded "MM:SS.mmm".
// FormatLapTime(ParseLapTime(s)) == s for any valid s.
func FormatLapTime(totalMillis int64) string {
	if totalMillis < 0 {
		totalMillis = 0
	}
	mm := totalMillis / 60_000
	ss := (totalMillis % 60_000) / 1_000
	ms := totalMillis % 1_000
	return fmt.Sprintf("%02d:%02d.%03d", mm, ss, ms)
}
