package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"clubhub/internal/database"
	"clubhub/internal/models"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	Get(ctx context.Context, id string) (*models.Announcement, error)
	// List returns announcements newest first.
	List(ctx context.Context) ([]models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type announcementRepo struct {
	db *database.DynamoDBClient
}

func NewAnnouncementRepository(db *database.DynamoDBClient) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, announcement *models.Announcement) error {
	announcement.PK = models.AnnouncementPK()
	announcement.SK = models.AnnouncementSK(announcement.AnnouncementID)
	announcement.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(announcement)
	if err != nil {
		return fmt.Errorf("failed to marshal announcement: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	return nil
}

func (r *announcementRepo) Get(ctx context.Context, id string) (*models.Announcement, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.AnnouncementPK()},
			"SK": &types.AttributeValueMemberS{Value: models.AnnouncementSK(id)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var announcement models.Announcement
	if err := attributevalue.UnmarshalMap(result.Item, &announcement); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcement: %w", err)
	}

	return &announcement, nil
}

func (r *announcementRepo) List(ctx context.Context) ([]models.Announcement, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.AnnouncementPK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	var announcements []models.Announcement
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &announcements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcements: %w", err)
	}

	sort.Slice(announcements, func(i, j int) bool {
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})

	return announcements, nil
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.AnnouncementPK()},
			"SK": &types.AttributeValueMemberS{Value: models.AnnouncementSK(id)},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	return nil
}
