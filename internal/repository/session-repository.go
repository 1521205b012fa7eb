package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"clubhub/internal/database"
	"clubhub/internal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, group models.Group, session *models.Session) error
	Get(ctx context.Context, group models.Group, sessionID string) (*models.Session, error)
	List(ctx context.Context, group models.Group) ([]models.Session, error)
	Delete(ctx context.Context, group models.Group, sessionID string) error
}

type sessionRepo struct {
	db *database.DynamoDBClient
}

func NewSessionRepository(db *database.DynamoDBClient) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, group models.Group, session *models.Session) error {
	session.PK = models.SessionPK(group)
	session.SK = models.SessionSK(session.SessionID)
	session.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sessionRepo) Get(ctx context.Context, group models.Group, sessionID string) (*models.Session, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.SessionPK(group)},
			"SK": &types.AttributeValueMemberS{Value: models.SessionSK(sessionID)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var session models.Session
	if err := attributevalue.UnmarshalMap(result.Item, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *sessionRepo) List(ctx context.Context, group models.Group) ([]models.Session, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.SessionPK(group)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []models.Session
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepo) Delete(ctx context.Context, group models.Group, sessionID string) error {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.SessionPK(group)},
			"SK": &types.AttributeValueMemberS{Value: models.SessionSK(sessionID)},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
