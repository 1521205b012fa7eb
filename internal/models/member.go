package models

import (
	"fmt"
	"strings"
	"time"
)

// Member is a registered club member. Username may carry a group prefix
// separated by the bullet delimiter, e.g. "PRIME ID • UKAR".
type Member struct {
	Username  string    `dynamodbav:"username" json:"username"`
	GameID    string    `dynamodbav:"game_id" json:"game_id"`
	Status    string    `dynamodbav:"status" json:"status"`
	Role      string    `dynamodbav:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

const (
	StatusGood    = "Good"
	StatusWarning = "Warning"

	RoleCaptain     = "Captain"
	RoleViceCaptain = "Vice Captain"
)

// UsernameDelimiter separates the group prefix from the member's own name.
const UsernameDelimiter = "•"

// DisplayName returns the part of the username after the delimiter, or the
// whole username when no delimiter is present.
func DisplayName(username string) string {
	parts := strings.SplitN(username, UsernameDelimiter, 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(username)
}

// Key handlers

func GroupPK(group Group) string {
	return fmt.Sprintf("GROUP#%s", group)
}

func MemberSK(username string) string {
	return fmt.Sprintf("MEMBER#%s", username)
}
