package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rahulAtGit/ZentriqVision/application/ports"
	"github.com/rahulAtGit/ZentriqVision/domain/core/entities"
	"github.com/rahulAtGit/ZentriqVision/domain/core/valueobjects"
	apperrors "github.com/rahulAtGit/ZentriqVision/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// API is the subset of the DynamoDB client used by the item store
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// IndexNames maps the logical indexes onto physical GSI names
type IndexNames struct {
	Attribute string
	Video     string
	Time      string
}

// ItemStore implements ports.ItemStore over a single DynamoDB table
type ItemStore struct {
	client    API
	tableName string
	indexes   IndexNames
	logger    *zap.Logger
}

var (
	_ ports.ItemStore          = (*ItemStore)(nil)
	_ ports.VideoStatusUpdater = (*ItemStore)(nil)
)

// NewItemStore creates a new ItemStore
func NewItemStore(client API, tableName string, indexes IndexNames, logger *zap.Logger) *ItemStore {
	return &ItemStore{
		client:    client,
		tableName: tableName,
		indexes:   indexes,
		logger:    logger,
	}
}

// Get retrieves a single record by its primary key
func (s *ItemStore) Get(ctx context.Context, pk, sk string) (entities.Record, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			entities.AttrPK: &types.AttributeValueMemberS{Value: pk},
			entities.AttrSK: &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, s.storeError("get", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return decodeItem(out.Item)
}

// Put writes a record unconditionally
func (s *ItemStore) Put(ctx context.Context, record entities.Record) error {
	if record.PK() == "" || record.SK() == "" {
		return apperrors.NewValidationError("record requires PK and SK")
	}
	av, err := attributevalue.MarshalMap(map[string]interface{}(record))
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}); err != nil {
		return s.storeError("put", err)
	}

	s.logger.Debug("Stored record",
		zap.String("pk", record.PK()),
		zap.String("sk", record.SK()),
	)
	return nil
}

// Query reads every page of PK = pk AND begins_with(SK, skPrefix)
func (s *ItemStore) Query(ctx context.Context, pk, skPrefix string) ([]entities.Record, error) {
	keyCond := expression.Key(entities.AttrPK).Equal(expression.Value(pk))
	if skPrefix != "" {
		keyCond = keyCond.And(expression.Key(entities.AttrSK).BeginsWith(skPrefix))
	}
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}

	return s.queryAll(ctx, "query", &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

// QueryIndex reads every page of a GSI partition
func (s *ItemStore) QueryIndex(ctx context.Context, index ports.IndexName, indexPK string) ([]entities.Record, error) {
	physical, keyAttr, err := s.resolveIndex(index)
	if err != nil {
		return nil, err
	}
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(keyAttr).Equal(expression.Value(indexPK))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build key condition: %w", err)
	}

	return s.queryAll(ctx, "query_index", &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		IndexName:                 aws.String(physical),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

// TransitionStatus updates the status only while it still equals from
func (s *ItemStore) TransitionStatus(ctx context.Context, orgID, videoID string, from, to valueobjects.VideoStatus, attrs map[string]interface{}) error {
	update := expression.Set(expression.Name("status"), expression.Value(string(to)))
	for name, value := range attrs {
		update = update.Set(expression.Name(name), expression.Value(value))
	}
	cond := expression.Name("status").Equal(expression.Value(string(from)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			entities.AttrPK: &types.AttributeValueMemberS{Value: valueobjects.OrgKey(orgID)},
			entities.AttrSK: &types.AttributeValueMemberS{Value: valueobjects.VideoKey(videoID)},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return apperrors.NewConflictError("video status changed concurrently").
				WithDetails(map[string]interface{}{"expected": string(from)})
		}
		return s.storeError("update_status", err)
	}

	s.logger.Info("Video status transitioned",
		zap.String("orgID", orgID),
		zap.String("videoID", videoID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return nil
}

func (s *ItemStore) queryAll(ctx context.Context, op string, input *dynamodb.QueryInput) ([]entities.Record, error) {
	start := time.Now()
	paginator := dynamodb.NewQueryPaginator(s.client, input)

	var records []entities.Record
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.storeError(op, err)
		}
		pages++
		for _, item := range page.Items {
			rec, err := decodeItem(item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	s.logger.Debug("Query completed",
		zap.String("operation", op),
		zap.String("index", aws.ToString(input.IndexName)),
		zap.Int("pages", pages),
		zap.Int("count", len(records)),
		zap.Duration("duration", time.Since(start)),
	)
	return records, nil
}

func (s *ItemStore) resolveIndex(index ports.IndexName) (physical, keyAttr string, err error) {
	switch index {
	case ports.AttributeIndex:
		return s.indexes.Attribute, entities.AttrGSI1PK, nil
	case ports.VideoIndex:
		return s.indexes.Video, entities.AttrGSI2PK, nil
	case ports.TimeIndex:
		return s.indexes.Time, entities.AttrGSI3PK, nil
	}
	return "", "", fmt.Errorf("unknown index %q", index)
}

// storeError classifies an SDK failure as a store-unavailable error
func (s *ItemStore) storeError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	fields := []zap.Field{zap.String("operation", op), zap.String("table", s.tableName), zap.Error(err)}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("errorCode", apiErr.ErrorCode()))
	}
	s.logger.Error("DynamoDB operation failed", fields...)
	return apperrors.NewDatabaseError(op, err)
}

func decodeItem(item map[string]types.AttributeValue) (entities.Record, error) {
	var rec map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return entities.Record(rec), nil
}
