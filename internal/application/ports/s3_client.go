package ports

import "context"

type S3Client interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, bucket, key string) (string, error)
	GetBucket() string
}
