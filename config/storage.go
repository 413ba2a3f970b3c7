package config

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPresigner is the part of the S3 presign client used for image links
type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config holds the presign client and bucket info for recipe images
type S3Config struct {
	Presigner  ObjectPresigner
	BucketName string
	Prefix     string
	Expiry     time.Duration
}

// NewS3Config initializes the S3 presign client from the application config
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Config{
		Presigner:  s3.NewPresignClient(client),
		BucketName: cfg.S3BucketName,
		Prefix:     cfg.S3ImagePrefix,
		Expiry:     cfg.ImageURLExpiry,
	}, nil
}

// ObjectKey returns the bucket key an image filename is stored under
func (s *S3Config) ObjectKey(filename string) string {
	return path.Join(s.Prefix, path.Clean("/" + filename)[1:])
}

// ImageURL generates a presigned URL for the given image filename
func (s *S3Config) ImageURL(ctx context.Context, filename string) (string, error) {
	presigned, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(s.ObjectKey(filename)),
	}, s3.WithPresignExpires(s.Expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign image %s: %w", filename, err)
	}
	return presigned.URL, nil
}
