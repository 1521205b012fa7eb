package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"clubhub/internal/apperrors"
	"clubhub/internal/export"
	"clubhub/internal/logger"
	"clubhub/internal/models"
	"clubhub/internal/repository"
)

// SessionExport is a rendered spreadsheet ready to be served.
type SessionExport struct {
	Filename string
	Data     []byte
}

type SessionService interface {
	Create(ctx context.Context, group models.Group, session *models.Session) *apperrors.AppError
	List(ctx context.Context, group models.Group) ([]models.Session, *apperrors.AppError)
	Delete(ctx context.Context, group models.Group, sessionID string) *apperrors.AppError
	// Active returns the session whose window covers today, the most
	// recently created one otherwise, or nil when none exist.
	Active(ctx context.Context, group models.Group) (*models.Session, *apperrors.AppError)
	Export(ctx context.Context, group models.Group, sessionID string) (*SessionExport, *apperrors.AppError)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	leaderboard LeaderboardService
	logger      *logger.Logger
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	leaderboard LeaderboardService,
	log *logger.Logger,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		leaderboard: leaderboard,
		logger:      log.With("component", "session-service"),
	}
}

func (s *sessionService) Create(ctx context.Context, group models.Group, session *models.Session) *apperrors.AppError {
	if session.MapName == "" {
		return emptyFieldError("map name")
	}
	if session.StartDate == "" {
		return emptyFieldError("start date")
	}
	if session.EndDate == "" {
		return emptyFieldError("end date")
	}
	for _, d := range []string{session.StartDate, session.EndDate} {
		if _, err := time.Parse(models.SessionDateLayout, d); err != nil {
			return apperrors.New(apperrors.CodeValidation, "dates must be YYYY-MM-DD")
		}
	}

	session.SessionID = uuid.New().String()

	if err := s.sessionRepo.Create(ctx, group, session); err != nil {
		return asAppError(err)
	}

	s.logger.Info("Session created", "group", group, "map", session.MapName)
	return nil
}

func (s *sessionService) List(ctx context.Context, group models.Group) ([]models.Session, *apperrors.AppError) {
	sessions, err := s.sessionRepo.List(ctx, group)
	if err != nil {
		return nil, asAppError(err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

func (s *sessionService) Delete(ctx context.Context, group models.Group, sessionID string) *apperrors.AppError {
	if err := s.sessionRepo.Delete(ctx, group, sessionID); err != nil {
		return asAppError(err)
	}
	return nil
}

func (s *sessionService) Active(ctx context.Context, group models.Group) (*models.Session, *apperrors.AppError) {
	sessions, appErr := s.List(ctx, group)
	if appErr != nil {
		return nil, appErr
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	today := time.Now().UTC()
	for i := range sessions {
		if sessions[i].Covers(today) {
			return &sessions[i], nil
		}
	}

	// No window covers today; fall back to the newest session so the
	// public page can still show the latest competition.
	return &sessions[0], nil
}

func (s *sessionService) Export(
	ctx context.Context,
	group models.Group,
	sessionID string,
) (*SessionExport, *apperrors.AppError) {
	session, err := s.sessionRepo.Get(ctx, group, sessionID)
	if err != nil {
		return nil, asAppError(err)
	}
	if session == nil {
		return nil, sessionNotFoundError(sessionID)
	}

	rows, appErr := s.leaderboard.TimeAttackLeaderboard(ctx, group, true)
	if appErr != nil {
		return nil, appErr
	}

	data, err := export.SessionWorkbook(rows)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to build spreadsheet")
	}

	return &SessionExport{
		Filename: export.SessionFilename(session),
		Data:     data,
	}, nil
}
