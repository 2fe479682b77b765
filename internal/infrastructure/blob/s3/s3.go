package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"file-storage-api/config"
	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/infrastructure/blob"
)

// Client stores blobs in an S3-compatible bucket under date-partitioned keys.
type Client struct {
	logger *zap.Logger
	s3     *s3.Client
	region string
	bucket string
}

func New(ctx context.Context, logger *zap.Logger, cfg config.S3) (*Client, error) {
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

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("s3 blob store ready",
		zap.String("bucket", cfg.BucketUploads),
		zap.String("region", cfg.Region),
	)

	return &Client{
		logger: logger,
		s3:     client,
		region: cfg.Region,
		bucket: cfg.BucketUploads,
	}, nil
}

func (c *Client) Put(ctx context.Context, r io.Reader, size int64, contentType, originalName string) (*ports.BlobObject, error) {
	storedName := blob.EnsureExt(blob.SafeFileName(originalName), contentType)
	key := storageKey(storedName)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		// A failed multipart/chunked put can leave a partial object; make sure
		// nothing stays reachable through the key before reporting the error.
		if _, delErr := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		}); delErr != nil {
			c.logger.Warn("cleanup of failed upload failed",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("put object: %w", err)
	}

	return &ports.BlobObject{
		StoredName:      storedName,
		LocationPointer: key,
		DownloadURL:     c.GetPublicURL(key),
	}, nil
}

func (c *Client) Get(ctx context.Context, pointer string) (io.ReadCloser, error) {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(pointer),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ports.ErrBlobNotFound
		}
		return nil, fmt.Errorf("get object: %w", err)
	}

	return out.Body, nil
}

func (c *Client) Delete(ctx context.Context, pointer string) error {
	if _, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(pointer),
	}); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

func (c *Client) GetPublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

func (c *Client) Bucket() string { return c.bucket }

// storageKey: "files/YYYY/MM/DD/<ts-nanosec>/<filename>.ext"
func storageKey(storedName string) string {
	now := time.Now().UTC()
	return fmt.Sprintf(
		"files/%04d/%02d/%02d/%s/%s",
		now.Year(), int(now.Month()), now.Day(),
		now.Format("20060102T150405.000000000Z"),
		storedName,
	)
}
