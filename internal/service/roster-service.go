package service

import (
	"context"
	"fmt"
	"math/rand"

	"clubhub/internal/apperrors"
	"clubhub/internal/logger"
	"clubhub/internal/models"
	"clubhub/internal/repository"
)

// MemberUpdate carries a partial edit; nil fields are left untouched.
type MemberUpdate struct {
	GameID *string
	Status *string
	Role   *string
}

// ImportMember is one row of a bulk roster import.
type ImportMember struct {
	Username string `json:"username"`
	GameID   string `json:"game_id"`
}

// ImportResult reports how a bulk import went.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}

type RosterService interface {
	List(ctx context.Context, group models.Group) ([]models.Member, *apperrors.AppError)
	Add(ctx context.Context, group models.Group, member *models.Member) *apperrors.AppError
	Update(ctx context.Context, group models.Group, username string, update MemberUpdate) (*models.Member, *apperrors.AppError)
	Remove(ctx context.Context, group models.Group, username string) *apperrors.AppError
	Import(ctx context.Context, group models.Group, members []ImportMember) (*ImportResult, *apperrors.AppError)
}

type rosterService struct {
	memberRepo repository.MemberRepository
	logger     *logger.Logger
}

func NewRosterService(memberRepo repository.MemberRepository, log *logger.Logger) RosterService {
	return &rosterService{
		memberRepo: memberRepo,
		logger:     log.With("component", "roster-service"),
	}
}

func (s *rosterService) List(ctx context.Context, group models.Group) ([]models.Member, *apperrors.AppError) {
	members, err := s.memberRepo.ListByGroup(ctx, group)
	if err != nil {
		return nil, asAppError(err)
	}
	return members, nil
}

func (s *rosterService) Add(ctx context.Context, group models.Group, member *models.Member) *apperrors.AppError {
	if member.Username == "" {
		return emptyFieldError("username")
	}
	if member.GameID == "" {
		return emptyFieldError("game id")
	}
	if err := validateStatus(member.Status); err != nil {
		return err
	}
	if err := validateRole(member.Role); err != nil {
		return err
	}
	if member.Status == "" {
		member.Status = models.StatusGood
	}

	if err := s.memberRepo.Create(ctx, group, member); err != nil {
		return asAppError(err)
	}

	s.logger.Info("Member added", "group", group, "username", member.Username)
	return nil
}

func (s *rosterService) Update(
	ctx context.Context,
	group models.Group,
	username string,
	update MemberUpdate,
) (*models.Member, *apperrors.AppError) {
	member, err := s.memberRepo.Get(ctx, group, username)
	if err != nil {
		return nil, asAppError(err)
	}
	if member == nil {
		return nil, apperrors.New(apperrors.CodeNotFound,
			fmt.Sprintf("member %q not found in group %s", username, group))
	}

	if update.GameID != nil {
		member.GameID = *update.GameID
	}
	if update.Status != nil {
		if err := validateStatus(*update.Status); err != nil {
			return nil, err
		}
		member.Status = *update.Status
	}
	if update.Role != nil {
		if err := validateRole(*update.Role); err != nil {
			return nil, err
		}
		member.Role = *update.Role
	}

	if err := s.memberRepo.Put(ctx, group, member); err != nil {
		return nil, asAppError(err)
	}

	return member, nil
}

func (s *rosterService) Remove(ctx context.Context, group models.Group, username string) *apperrors.AppError {
	if err := s.memberRepo.Delete(ctx, group, username); err != nil {
		return asAppError(err)
	}
	s.logger.Info("Member removed", "group", group, "username", username)
	return nil
}

func (s *rosterService) Import(
	ctx context.Context,
	group models.Group,
	members []ImportMember,
) (*ImportResult, *apperrors.AppError) {
	if len(members) == 0 {
		return nil, emptyFieldError("members")
	}

	result := &ImportResult{}
	for _, im := range members {
		if im.Username == "" {
			result.Skipped = append(result.Skipped, "(missing username)")
			continue
		}

		gameID := im.GameID
		if gameID == "" {
			gameID = randomGameID()
		}

		member := &models.Member{
			Username: im.Username,
			GameID:   gameID,
			Status:   models.StatusGood,
		}

		if err := s.memberRepo.Create(ctx, group, member); err != nil {
			s.logger.Warn("Import skipped member", "group", group, "username", im.Username, "error", err)
			result.Skipped = append(result.Skipped, im.Username)
			continue
		}
		result.Imported++
	}

	s.logger.Info("Roster import finished",
		"group", group, "imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

// randomGameID generates a placeholder 10-digit game identifier for
// imported members that did not come with one.
func randomGameID() string {
	return fmt.Sprintf("%d", 1_000_000_000+rand.Int63n(9_000_000_000))
}

func validateStatus(status string) *apperrors.AppError {
	switch status {
	case "", models.StatusGood, models.StatusWarning:
		return nil
	}
	return apperrors.New(apperrors.CodeValidation,
		fmt.Sprintf("invalid status %q", status))
}

func validateRole(role string) *apperrors.AppError {
	switch role {
	case "", models.RoleCaptain, models.RoleViceCaptain:
		return nil
	}
	return apperrors.New(apperrors.CodeValidation,
		fmt.Sprintf("invalid role %q", role))
}
