package adapters

import (
	"context"
	"time"

	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoBriefingItem struct {
	BriefingId string  `dynamodbav:"briefing_id"`
	VideoKey   string  `dynamodbav:"video_key"`
	Duration   float64 `dynamodbav:"duration"`
	SlideCount int     `dynamodbav:"slide_count"`
	CreatedAt  string  `dynamodbav:"created_at"`
	TTL        int64   `dynamodbav:"ttl"`
}

type briefingRecordStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewBriefingRecordStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB,
	dynamoConfig *config.DynamoConfig) outbound.BriefingRecordPort {
	return &briefingRecordStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *briefingRecordStore) Save(ctx context.Context, record outbound.BriefingRecord) error {
	now := time.Now()
	item := dynamoBriefingItem{
		BriefingId: record.BriefingID,
		VideoKey:   record.VideoKey,
		Duration:   record.Duration,
		SlideCount: record.SlideCount,
		CreatedAt:  now.UTC().Format(time.RFC3339),
		TTL:        now.Add(time.Duration(s.dynamoConfig.TtlMinutes) * time.Minute).Unix(),
	}

	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to marshal briefing record", map[string]interface{}{
			"briefing_id": record.BriefingID,
		})
		return err
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.dynamoConfig.TableName),
	}

	_, err = s.dynamoSvc.PutItemWithContext(ctx, input)
	if err != nil {
		s.logger.ErrorWithFields(err, "Failed to save briefing record", map[string]interface{}{
			"briefing_id": record.BriefingID,
		})
		return err
	}

	return nil
}
