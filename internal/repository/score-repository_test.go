package repository

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"clubhub/internal/database"
	"clubhub/internal/models"
)

func deleteKey(pk, sk string) types.Delete {
	return types.Delete{
		TableName: aws.String("test"),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	}
}

func makeEntries(n int) []models.ScoreEntry {
	entries := make([]models.ScoreEntry, n)
	for i := range entries {
		entries[i] = models.ScoreEntry{
			PK: "SCORE#prime#endurance",
			SK: fmt.Sprintf("ENTRY#user%03d", i),
		}
	}
	return entries
}

func TestChunkEntriesRespectsTransactionLimit(t *testing.T) {
	tests := []struct {
		entries   int
		wantSizes []int
	}{
		{entries: 0, wantSizes: nil},
		{entries: 1, wantSizes: []int{1}},
		{entries: 100, wantSizes: []int{100}},
		{entries: 101, wantSizes: []int{100, 1}},
		{entries: 250, wantSizes: []int{100, 100, 50}},
	}

	for _, tt := range tests {
		batches := chunkEntries(makeEntries(tt.entries), database.TransactionItemLimit)
		if len(batches) != len(tt.wantSizes) {
			t.Errorf("%d entries: got %d batches, want %d", tt.entries, len(batches), len(tt.wantSizes))
			continue
		}

		total := 0
		for i, batch := range batches {
			if len(batch) != tt.wantSizes[i] {
				t.Errorf("%d entries: batch %d has %d items, want %d", tt.entries, i, len(batch), tt.wantSizes[i])
			}
			total += len(batch)
		}
		if total != tt.entries {
			t.Errorf("%d entries: batches cover %d items", tt.entries, total)
		}
	}
}

func TestChunkEntriesPreservesOrder(t *testing.T) {
	entries := makeEntries(150)
	batches := chunkEntries(entries, database.TransactionItemLimit)

	seen := 0
	for _, batch := range batches {
		for _, e := range batch {
			if e.SK != entries[seen].SK {
				t.Fatalf("entry %d out of order: got %s", seen, e.SK)
			}
			seen++
		}
	}
}

func TestTransactionBuilderRefusesOverflow(t *testing.T) {
	builder := database.NewTransactionBuilder()
	for _, batch := range chunkEntries(makeEntries(database.TransactionItemLimit), database.TransactionItemLimit) {
		for range batch {
			if err := builder.AddDelete(deleteKey("SCORE#prime#endurance", "ENTRY#x")); err != nil {
				t.Fatalf("add within limit: %v", err)
			}
		}
	}
	if err := builder.AddDelete(deleteKey("SCORE#prime#endurance", "ENTRY#overflow")); err == nil {
		t.Error("expected error past the transaction limit")
	}
}
