package aws

import (
	"context"
	"fmt"
	"os"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store wraps the S3 operations the studio backend needs: presigned PUT
// URLs for client uploads (retouch photos, gallery ingest) and public URL
// construction for delivered objects.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

func NewS3Store(cfg sdkaws.Config, bucket string) *S3Store {
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}
}

// PresignUpload generates a presigned PUT URL for the given object key.
// The returned header map must be sent verbatim by the uploading client.
func (s *S3Store) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, map[string]string, error) {
	input := &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		ContentType: &contentType,
	}

	presigned, err := s.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return presigned.URL, headers, nil
}

// PresignDownload generates a presigned GET URL, used for retouch delivery
// links emailed to customers.
func (s *S3Store) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}

	presigned, err := s.presigner.PresignGetObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign get object: %w", err)
	}
	return presigned.URL, nil
}

// PublicURL builds the public object URL for a key. When AWS_S3_ENDPOINT is
// set (LocalStack), the path-style URL is returned instead.
func (s *S3Store) PublicURL(key string) string {
	if endpoint := os.Getenv("AWS_S3_ENDPOINT"); endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
