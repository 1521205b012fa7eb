package models

import (
	"fmt"
	"time"
)

// TimeAttackEntry is a participant's current lap-time submission with its
// evidence image. Resubmission overwrites time, image and submission id.
type TimeAttackEntry struct {
	Username     string    `dynamodbav:"username" json:"username"`
	TimeMillis   int64     `dynamodbav:"time_millis" json:"time_millis"`
	ImageURL     string    `dynamodbav:"image_url" json:"image_url"`
	ImageRef     string    `dynamodbav:"image_ref" json:"-"`
	SubmissionID string    `dynamodbav:"submission_id" json:"submission_id"`
	UpdatedAt    time.Time `dynamodbav:"updated_at" json:"updated_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

// Session describes a time-attack competition window for a group.
type Session struct {
	SessionID string    `dynamodbav:"session_id" json:"session_id"`
	MapName   string    `dynamodbav:"map_name" json:"map_name"`
	CarName   string    `dynamodbav:"car_name,omitempty" json:"car_name,omitempty"`
	StartDate string    `dynamodbav:"start_date" json:"start_date"`
	EndDate   string    `dynamodbav:"end_date" json:"end_date"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

// SessionDateLayout is the calendar-date format sessions are keyed by.
const SessionDateLayout = "2006-01-02"

// Covers reports whether the session window contains the given day.
func (s *Session) Covers(day time.Time) bool {
	start, err := time.Parse(SessionDateLayout, s.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(SessionDateLayout, s.EndDate)
	if err != nil {
		return false
	}
	d := day.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}

// Key handlers

func TimeAttackPK(group Group) string {
	return fmt.Sprintf("TA#%s", group)
}

func SessionPK(group Group) string {
	return fmt.Sprintf("TASESSION#%s", group)
}

func SessionSK(sessionID string) string {
	return fmt.Sprintf("SESSION#%s", sessionID)
}
