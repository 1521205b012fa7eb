package models

import "time"

// ScoreEntry is one participant's submitted score for an event scope.
// At most one live entry exists per (scope, username); the repository
// enforces this with a conditional put.
type ScoreEntry struct {
	Username  string    `dynamodbav:"username" json:"username"`
	Score     int64     `dynamodbav:"score" json:"score"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}
