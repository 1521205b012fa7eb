package events

// Stream and subject layout for leaderboard change notifications.
const (
	LeaderboardEventsStream = "LEADERBOARD_EVENTS"

	ScoreSubmitted  = "events.leaderboard.scoreSubmitted"
	TimeSubmitted   = "events.leaderboard.timeSubmitted"
	ScopeReset      = "events.leaderboard.scopeReset"
	TimeAttackReset = "events.leaderboard.timeAttackReset"

	LeaderboardEventsWildcard = "events.leaderboard.*"
)

// ScoreSubmittedEvent announces a new score entry in an event scope.
type ScoreSubmittedEvent struct {
	Group     string `json:"group"`
	Event     string `json:"event"`
	Username  string `json:"username"`
	Score     int64  `json:"score"`
	Timestamp int64  `json:"timestamp"`
}

// TimeSubmittedEvent announces a new or overwritten time-attack entry.
type TimeSubmittedEvent struct {
	Group        string `json:"group"`
	Username     string `json:"username"`
	TimeMillis   int64  `json:"time_millis"`
	SubmissionID string `json:"submission_id"`
	Timestamp    int64  `json:"timestamp"`
}

// ResetEvent announces that all entries in a scope were removed.
type ResetEvent struct {
	Group     string `json:"group"`
	Event     string `json:"event,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
