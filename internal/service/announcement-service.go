package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"clubhub/internal/apperrors"
	"clubhub/internal/logger"
	"clubhub/internal/media"
	"clubhub/internal/models"
	"clubhub/internal/repository"
)

type AnnouncementService interface {
	Create(ctx context.Context, title, body string, image media.Upload) (*models.Announcement, *apperrors.AppError)
	List(ctx context.Context) ([]models.Announcement, *apperrors.AppError)
	Delete(ctx context.Context, id string) *apperrors.AppError

	AddNote(ctx context.Context, text string) (*models.Note, *apperrors.AppError)
	ListNotes(ctx context.Context) ([]models.Note, *apperrors.AppError)
	DeleteNote(ctx context.Context, id string) *apperrors.AppError
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	noteRepo         repository.NoteRepository
	mediaStore       media.Store
	maxUploadSize    int64
	logger           *logger.Logger
}

func NewAnnouncementService(
	announcementRepo repository.AnnouncementRepository,
	noteRepo repository.NoteRepository,
	mediaStore media.Store,
	maxUploadSize int64,
	log *logger.Logger,
) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		noteRepo:         noteRepo,
		mediaStore:       mediaStore,
		maxUploadSize:    maxUploadSize,
		logger:           log.With("component", "announcement-service"),
	}
}

func (s *announcementService) Create(
	ctx context.Context,
	title, body string,
	image media.Upload,
) (*models.Announcement, *apperrors.AppError) {
	if strings.TrimSpace(title) == "" {
		return nil, emptyFieldError("title")
	}
	if strings.TrimSpace(body) == "" {
		return nil, emptyFieldError("body")
	}
	if err := media.ValidateImage(image, s.maxUploadSize); err != nil {
		return nil, asAppError(err)
	}

	// Same rule as submissions: image first, nothing written on failure.
	stored, err := s.mediaStore.Put(ctx, "announcements", image)
	if err != nil {
		return nil, asAppError(err)
	}

	announcement := &models.Announcement{
		AnnouncementID: uuid.New().String(),
		Title:          title,
		Body:           body,
		ImageURL:       stored.URL,
		ImageRef:       stored.Ref,
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, asAppError(err)
	}

	s.logger.Info("Announcement created", "id", announcement.AnnouncementID)
	return announcement, nil
}

func (s *announcementService) List(ctx context.Context) ([]models.Announcement, *apperrors.AppError) {
	announcements, err := s.announcementRepo.List(ctx)
	if err != nil {
		return nil, asAppError(err)
	}
	return announcements, nil
}

func (s *announcementService) Delete(ctx context.Context, id string) *apperrors.AppError {
	announcement, err := s.announcementRepo.Get(ctx, id)
	if err != nil {
		return asAppError(err)
	}
	if announcement == nil {
		return apperrors.New(apperrors.CodeNotFound,
			fmt.Sprintf("announcement %q not found", id))
	}

	if announcement.ImageRef != "" {
		if err := s.mediaStore.Delete(ctx, announcement.ImageRef); err != nil {
			s.logger.Warn("Failed to delete announcement image",
				"id", id, "ref", announcement.ImageRef, "error", err)
		}
	}

	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return asAppError(err)
	}

	return nil
}

func (s *announcementService) AddNote(ctx context.Context, text string) (*models.Note, *apperrors.AppError) {
	if strings.TrimSpace(text) == "" {
		return nil, emptyFieldError("note text")
	}

	note := &models.Note{
		NoteID: uuid.New().String(),
		Text:   text,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, asAppError(err)
	}

	return note, nil
}

func (s *announcementService) ListNotes(ctx context.Context) ([]models.Note, *apperrors.AppError) {
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, asAppError(err)
	}
	return notes, nil
}

func (s *announcementService) DeleteNote(ctx context.Context, id string) *apperrors.AppError {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return asAppError(err)
	}
	return nil
}
