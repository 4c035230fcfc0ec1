package adapters

import (
	"context"
	"fmt"
	"os"
	"time"

	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
)

type s3VideoPublisher struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3VideoPublisher(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.VideoPublisherPort {
	return &s3VideoPublisher{
		logger:   logger,
		s3Svc:    s3Svc,
		s3Config: s3Config,
	}
}

// Publish uploads the finished briefing and removes the local copy; the
// bucket becomes the artifact's home once configured.
func (s *s3VideoPublisher) Publish(ctx context.Context, req outbound.PublishVideoRequest) (*outbound.PublishVideoResponse, error) {
	itemPath := s.getS3ItemPath(req)

	file, err := os.Open(req.VideoFileName)
	if err != nil {
		s.logger.Error(err, "Failed to open video file")
		return nil, err
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close video file")
			return
		}
		err = os.Remove(file.Name())
		if err != nil {
			s.logger.Error(err, "Failed to remove video file")
			return
		}
	}(file)

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(itemPath),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	}

	_, err = s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.Error(err, "Failed to upload briefing video to S3")
		return nil, err
	}

	return &outbound.PublishVideoResponse{
		VideoKey:    itemPath,
		StoreRegion: s.s3Config.Region,
	}, nil
}

func (s *s3VideoPublisher) getS3ItemPath(req outbound.PublishVideoRequest) string {
	return fmt.Sprintf("briefings/%s/%s/briefing.mp4", time.Now().UTC().Format("2006-01-02"), req.BriefingID)
}
