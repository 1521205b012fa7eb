package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"clubhub/internal/apperrors"
	"clubhub/internal/config"
)

type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, cfg *config.Config) (*S3Store, error) {
	var awsCfg aws.Config
	var err error

	if cfg.AWS.Endpoint != "" {
		// MinIO or localstack in development
		awsCfg, err = aws_config.LoadDefaultConfig(ctx,
			aws_config.WithRegion(cfg.AWS.Region),
			aws_config.WithBaseEndpoint(cfg.AWS.Endpoint),
			aws_config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
			),
		)
	} else {
		awsCfg, err = aws_config.LoadDefaultConfig(ctx,
			aws_config.WithRegion(cfg.AWS.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.AWS.Endpoint != ""
	})

	return &S3Store{
		client:  client,
		bucket:  cfg.Media.Bucket,
		baseURL: strings.TrimRight(cfg.Media.PublicBaseURL, "/"),
	}, nil
}

func (s *S3Store) Put(ctx context.Context, folder string, upload Upload) (Stored, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), path.Ext(upload.Filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(upload.Data),
		ContentType: aws.String(upload.ContentType),
	})
	if err != nil {
		return Stored{}, apperrors.Wrap(err, apperrors.CodeUpload, "failed to upload image")
	}

	return Stored{
		URL: fmt.Sprintf("%s/%s", s.baseURL, key),
		Ref: key,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUpload, "failed to delete image")
	}
	return nil
}
