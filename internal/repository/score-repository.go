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

type ScoreRepository interface {
	// Insert writes a new entry and fails with a DUPLICATE_SUBMISSION error
	// when the participant already has one in this scope. The existing entry
	// is left untouched.
	Insert(ctx context.Context, scope models.Scope, entry *models.ScoreEntry) error
	List(ctx context.Context, scope models.Scope) ([]models.ScoreEntry, error)
	DeleteAll(ctx context.Context, scope models.Scope) (int, error)
}

type scoreRepo struct {
	db *database.DynamoDBClient
}

func NewScoreRepository(db *database.DynamoDBClient) ScoreRepository {
	return &scoreRepo{db: db}
}

func (r *scoreRepo) Insert(ctx context.Context, scope models.Scope, entry *models.ScoreEntry) error {
	entry.PK = models.ScopePK(scope)
	entry.SK = models.EntrySK(entry.Username)
	entry.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal score entry: %w", err)
	}

	// The condition is the one-submission-per-participant invariant; no
	// read-then-write race is possible here.
	_, err = r.db.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.db.Table()),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})

	if err != nil {
		if isConditionalCheckFailed(err) {
			return apperrors.New(apperrors.CodeDuplicateSubmission,
				fmt.Sprintf("%q already has a score in %s", entry.Username, scope))
		}
		return fmt.Errorf("failed to insert score entry: %w", err)
	}

	return nil
}

func (r *scoreRepo) List(ctx context.Context, scope models.Scope) ([]models.ScoreEntry, error) {
	result, err := r.db.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.db.Table()),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.ScopePK(scope)},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list score entries: %w", err)
	}

	var entries []models.ScoreEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score entries: %w", err)
	}

	return entries, nil
}

func (r *scoreRepo) DeleteAll(ctx context.Context, scope models.Scope) (int, error) {
	entries, err := r.List(ctx, scope)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	// A transaction holds at most 100 items, so large scopes are deleted
	// in batches. Each batch is atomic; the reset as a whole is not.
	for _, batch := range chunkEntries(entries, database.TransactionItemLimit) {
		builder := database.NewTransactionBuilder()
		for _, e := range batch {
			if err := builder.AddDelete(types.Delete{
				TableName: aws.String(r.db.Table()),
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: e.PK},
					"SK": &types.AttributeValueMemberS{Value: e.SK},
				},
			}); err != nil {
				return 0, err
			}
		}

		if err := builder.Execute(ctx, r.db.Client); err != nil {
			return 0, fmt.Errorf("failed to delete score entries: %w", err)
		}
	}

	return len(entries), nil
}

// chunkEntries splits entries into slices of at most size elements.
func chunkEntries(entries []models.ScoreEntry, size int) [][]models.ScoreEntry {
	var batches [][]models.ScoreEntry
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, entries[start:end])
	}
	return batches
}
