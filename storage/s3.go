package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"bitwise74/ingest-api/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Objects above this size go through the multipart uploader
const minMultipartSize = 12 << 20

// S3Store keeps blobs in an S3 bucket under <category>/<key>.
type S3Store struct {
	C      *s3.Client
	Bucket *string
}

func NewS3() (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("aws.access_key"),
			viper.GetString("aws.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("aws.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.Region = viper.GetString("aws.region")
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
			}
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3Store{
		C:      client,
		Bucket: bucket,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, r io.Reader, size int64, originalName, mime string, category model.FileCategory) (*SavedBlob, error) {
	key := path.Join(categoryDir(category), uuid.NewString()+path.Ext(originalName))
	now := time.Now()

	input := &s3.PutObjectInput{
		Bucket:       s.Bucket,
		Key:          aws.String(key),
		Body:         r,
		ContentType:  aws.String(mime),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}

	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	var err error
	if size > minMultipartSize {
		u := manager.NewUploader(s.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 6 << 20
		})

		_, err = u.Upload(ctx, input)
	} else {
		_, err = s.C.PutObject(ctx, input)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upload blob to S3, %w", err)
	}

	zap.L().Debug("Blob uploaded", zap.String("key", key), zap.Duration("took", time.Since(now)))

	return &SavedBlob{
		FileKey:      path.Base(key),
		RelativePath: key,
		AbsolutePath: "s3://" + *s.Bucket + "/" + key,
	}, nil
}

func (s *S3Store) Open(ctx context.Context, relativePath string) (io.ReadCloser, error) {
	out, err := s.C.GetObject(ctx, &s3.GetObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(relativePath),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blob from S3, %w", err)
	}

	return out.Body, nil
}

// Delete is idempotent, S3 treats deleting a missing key as success.
func (s *S3Store) Delete(ctx context.Context, relativePath string) error {
	_, err := s.C.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: s.Bucket,
		Key:    aws.String(relativePath),
	})
	if err != nil {
		return fmt.Errorf("failed to delete blob from S3, %w", err)
	}

	return nil
}
