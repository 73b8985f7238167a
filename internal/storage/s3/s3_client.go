// Package s3 archives exports in an S3-compatible bucket.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"khata/internal/config"
	"khata/internal/port"
)

// Export CSVs are small per part; 5 MiB is the S3 multipart minimum.
const uploadPartSize = 5 * 1024 * 1024

type archiveStore struct {
	presigner *s3.PresignClient
	uploader  *manager.Uploader
}

// NewS3Client creates the export archive backed by S3, or by a compatible
// endpoint such as MinIO when cfg.Endpoint is set.
func NewS3Client(ctx context.Context, cfg *config.S3Config) (port.ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &archiveStore{
		presigner: s3.NewPresignClient(client),
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = uploadPartSize
			u.Concurrency = 1
		}),
	}, nil
}

// Put streams obj.Body to the bucket in parts without knowing its length.
func (a *archiveStore) Put(ctx context.Context, obj port.ArchiveObject) (*port.StoredObject, error) {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(obj.Bucket),
		Key:         aws.String(obj.Key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
		Metadata:    obj.Metadata,
	}
	if obj.Filename != "" {
		in.ContentDisposition = aws.String(attachment(obj.Filename))
	}

	result, err := a.uploader.Upload(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("s3 put %s: %w", obj.Key, err)
	}
	return &port.StoredObject{Location: result.Location, ETag: aws.ToString(result.ETag)}, nil
}

// PresignDownload returns a GET link valid for expiry that saves as filename.
func (a *archiveStore) PresignDownload(ctx context.Context, bucket, key, filename string, expiry time.Duration) (string, error) {
	in := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}
	if filename != "" {
		in.ResponseContentDisposition = aws.String(attachment(filename))
	}

	result, err := a.presigner.PresignGetObject(ctx, in, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return result.URL, nil
}

func attachment(filename string) string {
	return fmt.Sprintf(`attachment; filename="%s"`, filename)
}
