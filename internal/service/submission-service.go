package service

import (
	"context"

	"github.com/google/uuid"

	"clubhub/internal/apperrors"
	"clubhub/internal/logger"
	"clubhub/internal/media"
	"clubhub/internal/models"
	"clubhub/internal/ranking"
	"clubhub/internal/repository"
)

// Publisher is the slice of the event publisher the workflow needs.
type Publisher interface {
	PublishScoreSubmitted(ctx context.Context, scope models.Scope, username string, score int64) error
	PublishTimeSubmitted(ctx context.Context, group models.Group, entry *models.TimeAttackEntry) error
	PublishScopeReset(ctx context.Context, scope models.Scope) error
	PublishTimeAttackReset(ctx context.Context, group models.Group) error
}

type SubmissionService interface {
	SubmitScore(ctx context.Context, scope models.Scope, username, rawScore string) (*models.ScoreEntry, *apperrors.AppError)
	SubmitTimeAttack(ctx context.Context, group models.Group, username, rawTime string, image media.Upload) (*models.TimeAttackEntry, *apperrors.AppError)
	ResetScope(ctx context.Context, scope models.Scope) *apperrors.AppError
	ResetTimeAttack(ctx context.Context, group models.Group) *apperrors.AppError
}

type submissionService struct {
	memberRepo     repository.MemberRepository
	scoreRepo      repository.ScoreRepository
	timeAttackRepo repository.TimeAttackRepository
	mediaStore     media.Store
	publisher      Publisher
	maxUploadSize  int64
	logger         *logger.Logger
}

func NewSubmissionService(
	memberRepo repository.MemberRepository,
	scoreRepo repository.ScoreRepository,
	timeAttackRepo repository.TimeAttackRepository,
	mediaStore media.Store,
	publisher Publisher,
	maxUploadSize int64,
	log *logger.Logger,
) SubmissionService {
	return &submissionService{
		memberRepo:     memberRepo,
		scoreRepo:      scoreRepo,
		timeAttackRepo: timeAttackRepo,
		mediaStore:     mediaStore,
		publisher:      publisher,
		maxUploadSize:  maxUploadSize,
		logger:         log.With("component", "submission-service"),
	}
}

func (s *submissionService) SubmitScore(
	ctx context.Context,
	scope models.Scope,
	username, rawScore string,
) (*models.ScoreEntry, *apperrors.AppError) {
	if username == "" {
		return nil, emptyFieldError("username")
	}

	score, err := ranking.ParseScore(rawScore)
	if err != nil {
		return nil, asAppError(err)
	}

	member, err := s.memberRepo.Get(ctx, scope.Group, username)
	if err != nil {
		return nil, asAppError(err)
	}
	if member == nil {
		return nil, memberNotInRosterError(username, scope.Group)
	}

	entry := &models.ScoreEntry{
		Username: username,
		Score:    score,
	}
	// One submission per participant, enforced by the conditional write.
	if err := s.scoreRepo.Insert(ctx, scope, entry); err != nil {
		return nil, asAppError(err)
	}

	if err := s.publisher.PublishScoreSubmitted(ctx, scope, username, score); err != nil {
		// The entry is already durable; a lost notification only delays
		// live views until their next full load.
		s.logger.Warn("Score stored but event publish failed",
			"scope", scope.String(), "username", username, "error", err)
	}

	return entry, nil
}

func (s *submissionService) SubmitTimeAttack(
	ctx context.Context,
	group models.Group,
	username, rawTime string,
	image media.Upload,
) (*models.TimeAttackEntry, *apperrors.AppError) {
	if username == "" {
		return nil, emptyFieldError("username")
	}

	timeMillis, err := ranking.ParseLapTime(rawTime)
	if err != nil {
		return nil, asAppError(err)
	}

	if err := media.ValidateImage(image, s.maxUploadSize); err != nil {
		return nil, asAppError(err)
	}

	member, err := s.memberRepo.Get(ctx, group, username)
	if err != nil {
		return nil, asAppError(err)
	}
	if member == nil {
		return nil, memberNotInRosterError(username, group)
	}

	// Evidence goes up first. If the upload fails nothing is written; if
	// the write after it fails we accept the orphaned object.
	stored, err := s.mediaStore.Put(ctx, "time-attack", image)
	if err != nil {
		return nil, asAppError(err)
	}

	entry := &models.TimeAttackEntry{
		Username:     username,
		TimeMillis:   timeMillis,
		ImageURL:     stored.URL,
		ImageRef:     stored.Ref,
		SubmissionID: uuid.New().String(),
	}

	if err := s.timeAttackRepo.Upsert(ctx, group, entry); err != nil {
		return nil, asAppError(err)
	}

	if err := s.publisher.PublishTimeSubmitted(ctx, group, entry); err != nil {
		s.logger.Warn("Lap time stored but event publish failed",
			"group", group, "username", username, "error", err)
	}

	return entry, nil
}

func (s *submissionService) ResetScope(ctx context.Context, scope models.Scope) *apperrors.AppError {
	deleted, err := s.scoreRepo.DeleteAll(ctx, scope)
	if err != nil {
		return asAppError(err)
	}

	s.logger.Info("Scope reset", "scope", scope.String(), "deleted", deleted)

	if err := s.publisher.PublishScopeReset(ctx, scope); err != nil {
		s.logger.Warn("Scope reset event publish failed", "scope", scope.String(), "error", err)
	}

	return nil
}

func (s *submissionService) ResetTimeAttack(ctx context.Context, group models.Group) *apperrors.AppError {
	entries, err := s.timeAttackRepo.List(ctx, group)
	if err != nil {
		return asAppError(err)
	}

	for _, entry := range entries {
		// Evidence cleanup is best effort; a stuck image never blocks the
		// data record's deletion.
		if entry.ImageRef != "" {
			if err := s.mediaStore.Delete(ctx, entry.ImageRef); err != nil {
				s.logger.Warn("Failed to delete evidence image",
					"group", group, "username", entry.Username, "ref", entry.ImageRef, "error", err)
			}
		}

		if err := s.timeAttackRepo.Delete(ctx, group, entry.Username); err != nil {
			return asAppError(err)
		}
	}

	s.logger.Info("Time attack reset", "group", group, "deleted", len(entries))

	if err := s.publisher.PublishTimeAttackReset(ctx, group); err != nil {
		s.logger.Warn("Time attack reset event publish failed", "group", group, "error", err)
	}

	return nil
}
