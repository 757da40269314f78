package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"clinic-storage-api/config"
	"clinic-storage-api/internal/application/ports"
)

type Client struct {
	logger  *zap.Logger
	presign *awss3.PresignClient
	cfg     config.S3
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (ports.S3Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// path-style addressing is required by most S3-compatible
		// providers (MinIO, Wasabi)
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("s3 presign client ready",
		zap.String("region", cfg.Region),
		zap.String("bucket", cfg.Bucket),
	)

	return &Client{
		logger:  logger,
		presign: awss3.NewPresignClient(s3Client),
		cfg:     cfg,
	}, nil
}

func (c *Client) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	req, err := c.presign.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, awss3.WithPresignExpires(c.cfg.UploadTTL))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	return req.URL, nil
}

func (c *Client) PresignGet(ctx context.Context, bucket, key string) (string, error) {
	if bucket == "" {
		bucket = c.cfg.Bucket
	}

	req, err := c.presign.PresignGetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(c.cfg.DownloadTTL))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}

func (c *Client) GetBucket() string { return c.cfg.Bucket }
