package service

import (
	"context"

	"clubhub/internal/apperrors"
	"clubhub/internal/logger"
	"clubhub/internal/models"
	"clubhub/internal/ranking"
	"clubhub/internal/repository"
)

// LeaderboardService computes the authoritative standings from store
// snapshots. Every call recomputes from scratch; nothing is cached here.
type LeaderboardService interface {
	EventLeaderboard(ctx context.Context, scope models.Scope) ([]ranking.ScoreRow, *apperrors.AppError)
	// TimeAttackLeaderboard returns the full merged roster for the admin
	// view, or only the top recorded times for the public one.
	TimeAttackLeaderboard(ctx context.Context, group models.Group, adminView bool) ([]ranking.TimeRow, *apperrors.AppError)
}

type leaderboardService struct {
	memberRepo     repository.MemberRepository
	scoreRepo      repository.ScoreRepository
	timeAttackRepo repository.TimeAttackRepository
	logger         *logger.Logger
}

func NewLeaderboardService(
	memberRepo repository.MemberRepository,
	scoreRepo repository.ScoreRepository,
	timeAttackRepo repository.TimeAttackRepository,
	log *logger.Logger,
) LeaderboardService {
	return &leaderboardService{
		memberRepo:     memberRepo,
		scoreRepo:      scoreRepo,
		timeAttackRepo: timeAttackRepo,
		logger:         log.With("component", "leaderboard-service"),
	}
}

func (s *leaderboardService) EventLeaderboard(ctx context.Context, scope models.Scope) ([]ranking.ScoreRow, *apperrors.AppError) {
	roster, err := s.memberRepo.ListByGroup(ctx, scope.Group)
	if err != nil {
		return nil, asAppError(err)
	}

	entries, err := s.scoreRepo.List(ctx, scope)
	if err != nil {
		return nil, asAppError(err)
	}

	return ranking.RankScores(roster, entries), nil
}

func (s *leaderboardService) TimeAttackLeaderboard(ctx context.Context, group models.Group, adminView bool) ([]ranking.TimeRow, *apperrors.AppError) {
	roster, err := s.memberRepo.ListByGroup(ctx, group)
	if err != nil {
		return nil, asAppError(err)
	}

	entries, err := s.timeAttackRepo.List(ctx, group)
	if err != nil {
		return nil, asAppError(err)
	}

	rows := ranking.RankTimes(roster, entries)
	if adminView {
		return rows, nil
	}

	return ranking.TopTimes(rows, ranking.PublicTopTimes), nil
}
