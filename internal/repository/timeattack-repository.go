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

type TimeAttackRepository interface {
	// Upsert writes the participant's live entry, replacing any previous
	// submission. Last write wins.
	Upsert(ctx context.Context, group models.Group, entry *models.TimeAttackEntry) error
	Get(ctx context.Context, group models.Group, username string) (*models.TimeAttackEntry, error)
	List(ctx context.Context, group models.Group) ([]models.TimeAttackEntry, error)
	Delete(ctx context.Context, group models.Group, username string) error
}

type timeAttackRepo struct {
	db *database.DynamoDBClient
}

func NewTimeAttackRepository(db *database.DynamoDBClient) TimeAttackRepository {
	return &timeAttackRepo{db: db}
}

func (r *timeAttackRepo) Upsert(ctx context.Context, group models.Group, entry *models.TimeAttackEntry) error {
	entry.PK = models.TimeAttackPK(group)
	entry.SK = models.EntrySK(entry.Username)
	entry.UpdatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal time attack entry: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.db.Table()),
		Item:      item,
	})

	if err != nil {
		return fmt.Errorf("failed to upsert time attack entry: %w", err)
	}

	return nil
}

func (r *timeAttackRepo) Get(ctx context.Context, group models.Group, username string) (*models.TimeAttackEntry, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.TimeAttackPK(group)},
			"SK": &types.AttributeValueMemberS{Value: models.EntrySK(username)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get time attack entry: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var entry models.TimeAttackEntry
	if err := attributevalue.UnmarshalMap(result.Item, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal time attack entry: %w", err)
	}

	return &entry, nil
}

func (r *timeAttackRepo) List(ctx context.Context, group models.Group) ([]models.TimeAttackEntry, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.TimeAttackPK(group)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list time attack entries: %w", err)
	}

	var entries []models.TimeAttackEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal time attack entries: %w", err)
	}

	return entries, nil
}

func (r *timeAttackRepo) Delete(ctx context.Context, group models.Group, username string) error {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.TimeAttackPK(group)},
			"SK": &types.AttributeValueMemberS{Value: models.EntrySK(username)},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete time attack entry: %w", err)
	}

	return nil
}
