package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/dynamodb/client"
)

const journalSequenceSK = "SEQUENCE#JOURNAL_ENTRY"

// DynamoDBSequencer allocates entry numbers from an atomic counter item per
// company. Numbers taken by a transaction that later rolls back are not
// returned, so the sequence may have gaps.
type DynamoDBSequencer struct {
	client client.Client
	table  string
	logger *slog.Logger
}

var _ journal.Sequencer = (*DynamoDBSequencer)(nil)

// NewDynamoDBSequencer creates a new DynamoDBSequencer
func NewDynamoDBSequencer(client client.Client, table string, logger *slog.Logger) *DynamoDBSequencer {
	return &DynamoDBSequencer{
		client: client,
		table:  table,
		logger: logger,
	}
}

type sequenceItem struct {
	LastValue int64  `dynamodbav:"LastValue"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

func sequenceKey(companyID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("COMPANY#%s", companyID)},
		"SK": &types.AttributeValueMemberS{Value: journalSequenceSK},
	}
}

// NextEntryNumber atomically adds one to the company counter and returns the
// new value. The counter item is created on first use.
func (s *DynamoDBSequencer) NextEntryNumber(ctx context.Context, companyID string) (int64, error) {
	update := expression.Add(expression.Name("LastValue"), expression.Value(1)).
		Set(expression.Name("UpdatedAt"), expression.Value(time.Now().UTC().Format(time.RFC3339)))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return 0, commonErrors.NewInternalError("failed to build expression", err)
	}

	result, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       sequenceKey(companyID),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		s.logger.Error("failed to allocate entry number", "error", err, "companyId", companyID)
		return 0, commonErrors.NewInternalError("failed to allocate entry number", err)
	}

	var item sequenceItem
	if err := attributevalue.UnmarshalMap(result.Attributes, &item); err != nil {
		return 0, commonErrors.NewInternalError("failed to unmarshal sequence", err)
	}
	if item.LastValue <= 0 {
		return 0, commonErrors.NewInternalError("sequence update returned no value", nil)
	}
	return item.LastValue, nil
}

// Current returns the last allocated number of the company, zero when none
// has been allocated yet.
func (s *DynamoDBSequencer) Current(ctx context.Context, companyID string) (int64, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            sequenceKey(companyID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, commonErrors.NewInternalError("failed to read sequence", err)
	}
	if len(result.Item) == 0 {
		return 0, nil
	}

	var item sequenceItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return 0, commonErrors.NewInternalError("failed to unmarshal sequence", err)
	}
	return item.LastValue, nil
}
