package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"clubhub/internal/apperrors"
	"clubhub/internal/models"
)

type fakeAnnouncementRepo struct {
	announcements map[string]models.Announcement
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{announcements: make(map[string]models.Announcement)}
}

func (r *fakeAnnouncementRepo) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.CreatedAt = time.Now().UTC()
	r.announcements[announcement.AnnouncementID] = *announcement
	return nil
}

func (r *fakeAnnouncementRepo) Get(ctx context.Context, id string) (*models.Announcement, error) {
	if a, ok := r.announcements[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *fakeAnnouncementRepo) List(ctx context.Context) ([]models.Announcement, error) {
	announcements := make([]models.Announcement, 0, len(r.announcements))
	for _, a := range r.announcements {
		announcements = append(announcements, a)
	}
	return announcements, nil
}

func (r *fakeAnnouncementRepo) Delete(ctx context.Context, id string) error {
	delete(r.announcements, id)
	return nil
}

type fakeNoteRepo struct {
	notes map[string]models.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[string]models.Note)}
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *models.Note) error {
	r.notes[note.NoteID] = *note
	return nil
}

func (r *fakeNoteRepo) List(ctx context.Context) ([]models.Note, error) {
	notes := make([]models.Note, 0, len(r.notes))
	for _, n := range r.notes {
		notes = append(notes, n)
	}
	return notes, nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id string) error {
	delete(r.notes, id)
	return nil
}

func newTestAnnouncementService(
	announcementRepo *fakeAnnouncementRepo,
	store *fakeMediaStore,
) AnnouncementService {
	return NewAnnouncementService(announcementRepo, newFakeNoteRepo(), store, 5<<20, testLogger())
}

func TestAnnouncementCreate(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	svc := newTestAnnouncementService(repo, &fakeMediaStore{})

	announcement, err := svc.Create(context.Background(), "Race night", "Friday 20:00", validImage())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if announcement.ImageURL == "" || announcement.ImageRef == "" {
		t.Errorf("announcement should reference its stored image: %+v", announcement)
	}
	if len(repo.announcements) != 1 {
		t.Errorf("expected one stored announcement, got %d", len(repo.announcements))
	}
}

func TestAnnouncementCreateUploadFailureWritesNothing(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	store := &fakeMediaStore{putErr: apperrors.Wrap(errors.New("boom"), apperrors.CodeUpload, "upload failed")}
	svc := newTestAnnouncementService(repo, store)

	_, err := svc.Create(context.Background(), "Race night", "Friday 20:00", validImage())
	if err == nil {
		t.Fatal("expected upload error")
	}
	if len(repo.announcements) != 0 {
		t.Error("announcement persisted despite upload failure")
	}
}

func TestAnnouncementCreateRequiresFields(t *testing.T) {
	svc := newTestAnnouncementService(newFakeAnnouncementRepo(), &fakeMediaStore{})

	if _, err := svc.Create(context.Background(), "", "body", validImage()); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.Create(context.Background(), "title", "", validImage()); err == nil {
		t.Error("expected error for missing body")
	}
}

func TestAnnouncementDeleteRemovesImage(t *testing.T) {
	repo := newFakeAnnouncementRepo()
	store := &fakeMediaStore{}
	svc := newTestAnnouncementService(repo, store)

	announcement, err := svc.Create(context.Background(), "Race night", "Friday 20:00", validImage())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), announcement.AnnouncementID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.announcements) != 0 {
		t.Error("announcement still stored after delete")
	}
	if len(store.deleted) != 1 {
		t.Errorf("expected one image deletion, got %d", len(store.deleted))
	}
}

func TestNotesLifecycle(t *testing.T) {
	noteRepo := newFakeNoteRepo()
	svc := NewAnnouncementService(newFakeAnnouncementRepo(), noteRepo, &fakeMediaStore{}, 5<<20, testLogger())

	note, err := svc.AddNote(context.Background(), "bring rain tires")
	if err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	notes, err := svc.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected one note, got %d", len(notes))
	}

	if err := svc.DeleteNote(context.Background(), note.NoteID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if len(noteRepo.notes) != 0 {
		t.Error("note still stored after delete")
	}

	if _, err := svc.AddNote(context.Background(), ""); err == nil {
		t.Error("expected error for empty note")
	}
}
