package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	DefaultRegion  = "us-east-1"
	ContentTypeCSV = "text/csv"
)

// PutObjectAPI is the part of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Settings struct {
	Region   string
	Bucket   string
	Profile  string
	Endpoint string
}

type Uploader struct {
	api    PutObjectAPI
	bucket string
}

func LoadConfig(ctx context.Context, settings Settings) (*aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithDefaultRegion(DefaultRegion),
	}
	if settings.Region != "" {
		opts = append(opts, config.WithRegion(settings.Region))
	}
	if settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(settings.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		return nil, fmt.Errorf("invalid AWS credentials for profile %q: %w", settings.Profile, err)
	}

	return &awsCfg, nil
}

func NewUploader(ctx context.Context, settings Settings) (*Uploader, error) {
	if settings.Bucket == "" {
		return nil, fmt.Errorf("export bucket is not configured")
	}

	awsCfg, err := LoadConfig(ctx, settings)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(*awsCfg, func(o *s3.Options) {
		if settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(settings.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewUploaderWithClient(client, settings.Bucket), nil
}

func NewUploaderWithClient(api PutObjectAPI, bucket string) *Uploader {
	return &Uploader{api: api, bucket: bucket}
}

// Upload stores body under key and returns the object's s3:// location.
func (u *Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	if contentType == "" {
		contentType = ContentTypeCSV
	}

	_, err := u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload s3://%s/%s: %w", u.bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
