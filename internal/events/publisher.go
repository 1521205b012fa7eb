package events

import (
	"context"
	"fmt"
	"time"

	"clubhub/internal/logger"
	"clubhub/internal/models"
	"clubhub/internal/natsjetstream"
)

type EventPublisher struct {
	publisher *natsjetstream.Publisher
	logger    *logger.Logger
}

func NewEventPublisher(client *natsjetstream.Client, log *logger.Logger) *EventPublisher {
	return &EventPublisher{
		publisher: natsjetstream.NewPublisher(client),
		logger:    log.With("component", "event-publisher"),
	}
}

func (p *EventPublisher) PublishScoreSubmitted(ctx context.Context, scope models.Scope, username string, score int64) error {
	event := ScoreSubmittedEvent{
		Group:     string(scope.Group),
		Event:     string(scope.Event),
		Username:  username,
		Score:     score,
		Timestamp: time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, ScoreSubmitted, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish score submitted event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published score submitted event", "scope", scope.String(), "username", username)
	return nil
}

func (p *EventPublisher) PublishTimeSubmitted(ctx context.Context, group models.Group, entry *models.TimeAttackEntry) error {
	event := TimeSubmittedEvent{
		Group:        string(group),
		Username:     entry.Username,
		TimeMillis:   entry.TimeMillis,
		SubmissionID: entry.SubmissionID,
		Timestamp:    time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, TimeSubmitted, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish time submitted event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published time submitted event", "group", group, "username", entry.Username)
	return nil
}

func (p *EventPublisher) PublishScopeReset(ctx context.Context, scope models.Scope) error {
	event := ResetEvent{
		Group:     string(scope.Group),
		Event:     string(scope.Event),
		Timestamp: time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, ScopeReset, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published scope reset event", "scope", scope.String())
	return nil
}

func (p *EventPublisher) PublishTimeAttackReset(ctx context.Context, group models.Group) error {
	event := ResetEvent{
		Group:     string(group),
		Timestamp: time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, TimeAttackReset, event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published time attack reset event", "group", group)
	return nil
}
