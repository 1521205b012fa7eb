package service

import (
	"context"
	"testing"

	"clubhub/internal/models"
)

func TestEventLeaderboardRanksWholeRoster(t *testing.T) {
	memberRepo := newFakeMemberRepo("Alice", "Bob", "Carol")
	scoreRepo := newFakeScoreRepo()
	svc := NewLeaderboardService(memberRepo, scoreRepo, newFakeTimeAttackRepo(), testLogger())
	submissions := newTestSubmissionService(memberRepo, scoreRepo, newFakeTimeAttackRepo(), &fakeMediaStore{}, &fakePublisher{})

	if _, err := submissions.SubmitScore(context.Background(), testScope, "Bob", "500000"); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}

	rows, err := svc.EventLeaderboard(context.Background(), testScope)
	if err != nil {
		t.Fatalf("EventLeaderboard: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected a row per member, got %d", len(rows))
	}
	if rows[0].Username != "Bob" || rows[0].Rank != 1 || rows[0].Score != 500000 {
		t.Errorf("unexpected leader: %+v", rows[0])
	}
	for _, row := range rows[1:] {
		if row.Score != 0 {
			t.Errorf("member without submission should score 0: %+v", row)
		}
	}
}

func TestTimeAttackLeaderboardViews(t *testing.T) {
	memberRepo := newFakeMemberRepo("Alice", "Bob", "Carol")
	timeAttackRepo := newFakeTimeAttackRepo()
	svc := NewLeaderboardService(memberRepo, newFakeScoreRepo(), timeAttackRepo, testLogger())
	submissions := newTestSubmissionService(memberRepo, newFakeScoreRepo(), timeAttackRepo, &fakeMediaStore{}, &fakePublisher{})

	if _, err := submissions.SubmitTimeAttack(context.Background(), models.GroupPrime, "Bob", "01:30.000", validImage()); err != nil {
		t.Fatalf("SubmitTimeAttack: %v", err)
	}

	adminRows, err := svc.TimeAttackLeaderboard(context.Background(), models.GroupPrime, true)
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	if len(adminRows) != 3 {
		t.Fatalf("admin view should cover the roster, got %d rows", len(adminRows))
	}
	if adminRows[0].Username != "Bob" || adminRows[0].Rank != 1 {
		t.Errorf("unexpected admin leader: %+v", adminRows[0])
	}

	publicRows, err := svc.TimeAttackLeaderboard(context.Background(), models.GroupPrime, false)
	if err != nil {
		t.Fatalf("public view: %v", err)
	}
	if len(publicRows) != 1 {
		t.Fatalf("public view should only show recorded times, got %d rows", len(publicRows))
	}
	if publicRows[0].Username != "Bob" {
		t.Errorf("unexpected public leader: %+v", publicRows[0])
	}
}
