package repository

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/dynamodb/client"
)

// counterClient emulates UpdateItem ADD on an in-memory map
func counterClient() *client.MockDynamoDBClient {
	var mu sync.Mutex
	counters := make(map[string]int64)

	mock := client.NewMockDynamoDBClient()
	mock.UpdateItemFn = func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
		mu.Lock()
		defer mu.Unlock()
		pk := params.Key["PK"].(*types.AttributeValueMemberS).Value
		counters[pk]++
		return &dynamodb.UpdateItemOutput{
			Attributes: map[string]types.AttributeValue{
				"LastValue": &types.AttributeValueMemberN{Value: strconv.FormatInt(counters[pk], 10)},
			},
		}, nil
	}
	mock.GetItemFn = func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		mu.Lock()
		defer mu.Unlock()
		pk := params.Key["PK"].(*types.AttributeValueMemberS).Value
		value, ok := counters[pk]
		if !ok {
			return &dynamodb.GetItemOutput{}, nil
		}
		return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"LastValue": &types.AttributeValueMemberN{Value: strconv.FormatInt(value, 10)},
		}}, nil
	}
	return mock
}

func TestNextEntryNumber(t *testing.T) {
	t.Run("builds an ADD update on the company counter", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		var captured *dynamodb.UpdateItemInput
		mock.UpdateItemFn = func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			captured = params
			return &dynamodb.UpdateItemOutput{
				Attributes: map[string]types.AttributeValue{
					"LastValue": &types.AttributeValueMemberN{Value: "7"},
				},
			}, nil
		}
		seq := NewDynamoDBSequencer(mock, "ledger-table", slog.Default())

		// Act
		next, err := seq.NextEntryNumber(context.Background(), "acme")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(7), next)
		require.NotNil(t, captured)
		assert.Equal(t, "ledger-table", *captured.TableName)
		assert.Equal(t, "COMPANY#acme", captured.Key["PK"].(*types.AttributeValueMemberS).Value)
		assert.Equal(t, journalSequenceSK, captured.Key["SK"].(*types.AttributeValueMemberS).Value)
		assert.Contains(t, *captured.UpdateExpression, "ADD")
		assert.Equal(t, types.ReturnValueUpdatedNew, captured.ReturnValues)
	})

	t.Run("numbers are unique under concurrent allocation", func(t *testing.T) {
		// Setup
		seq := NewDynamoDBSequencer(counterClient(), "ledger-table", slog.Default())
		const workers = 20

		// Act
		var wg sync.WaitGroup
		results := make(chan int64, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := seq.NextEntryNumber(context.Background(), "acme")
				assert.NoError(t, err)
				results <- n
			}()
		}
		wg.Wait()
		close(results)

		// Assert
		seen := make(map[int64]bool)
		for n := range results {
			assert.False(t, seen[n], "duplicate number %d", n)
			seen[n] = true
		}
		assert.Len(t, seen, workers)
	})

	t.Run("counters are per company", func(t *testing.T) {
		// Setup
		seq := NewDynamoDBSequencer(counterClient(), "ledger-table", slog.Default())
		ctx := context.Background()

		// Act
		a1, _ := seq.NextEntryNumber(ctx, "a")
		a2, _ := seq.NextEntryNumber(ctx, "a")
		b1, err := seq.NextEntryNumber(ctx, "b")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), a1)
		assert.Equal(t, int64(2), a2)
		assert.Equal(t, int64(1), b1)
	})

	t.Run("client failure is an internal error", func(t *testing.T) {
		// Setup
		mock := client.NewMockDynamoDBClient()
		mock.UpdateItemFn = func(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			return nil, errors.New("throttled")
		}
		seq := NewDynamoDBSequencer(mock, "ledger-table", slog.Default())

		// Act
		_, err := seq.NextEntryNumber(context.Background(), "acme")

		// Assert
		require.Error(t, err)
		assert.True(t, commonErrors.Is(err, commonErrors.ErrInternal))
	})

	t.Run("empty response is rejected", func(t *testing.T) {
		// Setup
		seq := NewDynamoDBSequencer(client.NewMockDynamoDBClient(), "ledger-table", slog.Default())

		// Act
		_, err := seq.NextEntryNumber(context.Background(), "acme")

		// Assert
		require.Error(t, err)
	})
}

func TestCurrent(t *testing.T) {
	t.Run("zero before first allocation", func(t *testing.T) {
		// Setup
		seq := NewDynamoDBSequencer(counterClient(), "ledger-table", slog.Default())

		// Act
		current, err := seq.Current(context.Background(), "acme")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(0), current)
	})

	t.Run("last allocated value", func(t *testing.T) {
		// Setup
		seq := NewDynamoDBSequencer(counterClient(), "ledger-table", slog.Default())
		ctx := context.Background()
		_, _ = seq.NextEntryNumber(ctx, "acme")
		_, _ = seq.NextEntryNumber(ctx, "acme")

		// Act
		current, err := seq.Current(ctx, "acme")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(2), current)
	})
}
