package models

import (
	"fmt"
	"time"
)

// Announcement is a public club announcement with a required banner image.
type Announcement struct {
	AnnouncementID string    `dynamodbav:"announcement_id" json:"announcement_id"`
	Title          string    `dynamodbav:"title" json:"title"`
	Body           string    `dynamodbav:"body" json:"body"`
	ImageURL       string    `dynamodbav:"image_url" json:"image_url"`
	ImageRef       string    `dynamodbav:"image_ref" json:"-"`
	CreatedAt      time.Time `dynamodbav:"created_at" json:"created_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

// Note is a private admin dashboard note.
type Note struct {
	NoteID    string    `dynamodbav:"note_id" json:"note_id"`
	Text      string    `dynamodbav:"text" json:"text"`
	CreatedAt time.Time `dynamodbav:"created_at" json:"created_at"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

// Key handlers

func AnnouncementPK() string {
	return "ANNOUNCEMENT"
}

func AnnouncementSK(id string) string {
	return fmt.Sprintf("ANN#%s", id)
}

func NotePK() string {
	return "NOTE"
}

func NoteSK(id string) string {
	return fmt.Sprintf("NOTE#%s", id)
}
