package ranking

import (
	"fmt"
	"strconv"
	"strings"

	"clubhub/internal/apperrors"
)

// ParseScore parses a submitted score, tolerating "." and "," digit grouping
// as typed into the admin form (e.g. "1.500.000"). Negative or non-numeric
// input is rejected.
func ParseScore(raw string) (int64, error) {
	cleaned := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, apperrors.New(apperrors.CodeValidation, "score is required")
	}

	score, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeValidation,
			fmt.Sprintf("score %q is not a number", raw))
	}
	if score < 0 {
		return 0, apperrors.New(apperrors.CodeValidation, "score must not be negative")
	}

	return score, nil
}
