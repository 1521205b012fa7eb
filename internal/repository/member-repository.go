package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"clubhub/internal/apperrors"
	"clubhub/internal/database"
	"clubhub/internal/models"
)

type MemberRepository interface {
	Create(ctx context.Context, group models.Group, member *models.Member) error
	Get(ctx context.Context, group models.Group, username string) (*models.Member, error)
	ListByGroup(ctx context.Context, group models.Group) ([]models.Member, error)
	Put(ctx context.Context, group models.Group, member *models.Member) error
	Delete(ctx context.Context, group models.Group, username string) error
}

type memberRepo struct {
	db *database.DynamoDBClient
}

func NewMemberRepository(db *database.DynamoDBClient) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, group models.Group, member *models.Member) error {
	member.PK = models.GroupPK(group)
	member.SK = models.MemberSK(member.Username)
	member.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(member)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.New(apperrors.CodeValidation,
				fmt.Sprintf("member %q already exists in group %s", member.Username, group))
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

func (r *memberRepo) Get(ctx context.Context, group models.Group, username string) (*models.Member, error) {
	result, err := r.db.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.GroupPK(group)},
			"SK": &types.AttributeValueMemberS{Value: models.MemberSK(username)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var member models.Member
	if err := attributevalue.UnmarshalMap(result.Item, &member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal member: %w", err)
	}

	return &member, nil
}

func (r *memberRepo) ListByGroup(ctx context.Context, group models.Group) ([]models.Member, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.GroupPK(group)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	var members []models.Member
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &members); err != nil {
		return nil, fmt.Errorf("failed to unmarshal members: %w", err)
	}

	return members, nil
}

func (r *memberRepo) Put(ctx context.Context, group models.Group, member *models.Member) error {
	member.PK = models.GroupPK(group)
	member.SK = models.MemberSK(member.Username)

	item, err := attributevalue.MarshalMap(member)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})

	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.New(apperrors.CodeNotFound,
				fmt.Sprintf("member %q not found in group %s", member.Username, group))
		}
		return fmt.Errorf("failed to update member: %w", err)
	}

	return nil
}

func (r *memberRepo) Delete(ctx context.Context, group models.Group, username string) error {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.GroupPK(group)},
			"SK": &types.AttributeValueMemberS{Value: models.MemberSK(username)},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return nil
}
