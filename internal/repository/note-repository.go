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

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	List(ctx context.Context) ([]models.Note, error)
	Delete(ctx context.Context, id string) error
}

type noteRepo struct {
	db *database.DynamoDBClient
}

func NewNoteRepository(db *database.DynamoDBClient) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	note.PK = models.NotePK()
	note.SK = models.NoteSK(note.NoteID)
	note.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.db.Table()),
		Item:      item,
	})

	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepo) List(ctx context.Context) ([]models.Note, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.NotePK()},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	var notes []models.Note
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

func (r *noteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.db.Table()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: models.NotePK()},
			"SK": &types.AttributeValueMemberS{Value: models.NoteSK(id)},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
