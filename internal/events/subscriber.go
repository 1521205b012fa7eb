package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"clubhub/internal/logger"
	"clubhub/internal/models"
	"clubhub/internal/natsjetstream"
	"clubhub/internal/repository"
)

// Broadcaster pushes a payload to every live subscriber of a topic.
type Broadcaster interface {
	Broadcast(topic string, payload interface{})
}

// LiveMirror is the slice of the live repository the subscriber maintains.
type LiveMirror interface {
	SetScore(ctx context.Context, scope models.Scope, username string, score int64) error
	SetTime(ctx context.Context, group models.Group, username string, timeMillis int64) error
	ClearScores(ctx context.Context, scope models.Scope) error
	ClearTimes(ctx context.Context, group models.Group) error
	TopScores(ctx context.Context, scope models.Scope, n int64) ([]repository.LiveEntry, error)
	TopTimes(ctx context.Context, group models.Group, n int64) ([]repository.LiveEntry, error)
}

// EventSubscriber keeps the Redis mirror current and fans leaderboard
// changes out to connected pages. Each notification replaces the page's
// leaderboard wholesale.
type EventSubscriber struct {
	subscriber  *natsjetstream.Subscriber
	liveRepo    LiveMirror
	broadcaster Broadcaster
	logger      *logger.Logger

	consumeCtx jetstream.ConsumeContext
}

func NewEventSubscriber(
	natsClient *natsjetstream.Client,
	liveRepo LiveMirror,
	broadcaster Broadcaster,
	log *logger.Logger,
) *EventSubscriber {
	return &EventSubscriber{
		subscriber:  natsjetstream.NewSubscriber(natsClient, log),
		liveRepo:    liveRepo,
		broadcaster: broadcaster,
		logger:      log.With("component", "event-subscriber"),
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting event subscriptions")

	cfg := natsjetstream.ConsumerConfig{
		StreamName:    LeaderboardEventsStream,
		ConsumerName:  "clubhub-leaderboard-consumer",
		Durable:       "clubhub-leaderboard-consumer",
		FilterSubject: LeaderboardEventsWildcard,
		AckPolicy:     "explicit",
	}

	consumeCtx, err := s.subscriber.Subscribe(ctx, cfg, s.handleLeaderboardEvent)
	if err != nil {
		return fmt.Errorf("failed to subscribe to leaderboard events: %w", err)
	}
	s.consumeCtx = consumeCtx

	s.logger.Info("All event subscriptions started")
	return nil
}

func (s *EventSubscriber) Stop() {
	if s.consumeCtx != nil {
		s.consumeCtx.Drain()
	}
}

func (s *EventSubscriber) handleLeaderboardEvent(ctx context.Context, msg jetstream.Msg) error {
	subject := msg.Subject()

	s.logger.Debug("Received leaderboard event", "subject", subject)

	switch subject {
	case ScoreSubmitted:
		return s.handleScoreSubmitted(ctx, msg)
	case TimeSubmitted:
		return s.handleTimeSubmitted(ctx, msg)
	case ScopeReset:
		return s.handleScopeReset(ctx, msg)
	case TimeAttackReset:
		return s.handleTimeAttackReset(ctx, msg)
	default:
		s.logger.Warn("Unknown leaderboard event subject", "subject", subject)
		return nil
	}
}

func (s *EventSubscriber) handleScoreSubmitted(ctx context.Context, msg jetstream.Msg) error {
	var event ScoreSubmittedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal score submitted event: %w", err)
	}

	scope := models.Scope{Group: models.Group(event.Group), Event: models.EventType(event.Event)}
	if err := s.liveRepo.SetScore(ctx, scope, event.Username, event.Score); err != nil {
		return err
	}

	return s.broadcastScores(ctx, scope)
}

func (s *EventSubscriber) handleTimeSubmitted(ctx context.Context, msg jetstream.Msg) error {
	var event TimeSubmittedEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal time submitted event: %w", err)
	}

	group := models.Group(event.Group)
	if err := s.liveRepo.SetTime(ctx, group, event.Username, event.TimeMillis); err != nil {
		return err
	}

	return s.broadcastTimes(ctx, group)
}

func (s *EventSubscriber) handleScopeReset(ctx context.Context, msg jetstream.Msg) error {
	var event ResetEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal reset event: %w", err)
	}

	scope := models.Scope{Group: models.Group(event.Group), Event: models.EventType(event.Event)}
	if err := s.liveRepo.ClearScores(ctx, scope); err != nil {
		return err
	}

	return s.broadcastScores(ctx, scope)
}

func (s *EventSubscriber) handleTimeAttackReset(ctx context.Context, msg jetstream.Msg) error {
	var event ResetEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		return fmt.Errorf("failed to unmarshal reset event: %w", err)
	}

	group := models.Group(event.Group)
	if err := s.liveRepo.ClearTimes(ctx, group); err != nil {
		return err
	}

	return s.broadcastTimes(ctx, group)
}

func (s *EventSubscriber) broadcastScores(ctx context.Context, scope models.Scope) error {
	entries, err := s.liveRepo.TopScores(ctx, scope, 100)
	if err != nil {
		return err
	}
	s.broadcaster.Broadcast(ScoreTopic(scope), entries)
	return nil
}

func (s *EventSubscriber) broadcastTimes(ctx context.Context, group models.Group) error {
	entries, err := s.liveRepo.TopTimes(ctx, group, 100)
	if err != nil {
		return err
	}
	s.broadcaster.Broadcast(TimeTopic(group), entries)
	return nil
}

// ScoreTopic names the websocket topic for an event scope.
func ScoreTopic(scope models.Scope) string {
	return fmt.Sprintf("score:%s:%s", scope.Group, scope.Event)
}

// TimeTopic names the websocket topic for a group's time attack board.
func TimeTopic(group models.Group) string {
	return fmt.Sprintf("ta:%s", group)
}
