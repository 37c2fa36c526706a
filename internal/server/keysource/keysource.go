// Package keysource resolves the token signing key. The key is either a
// literal from configuration or the contents of an object in an
// S3-compatible store (AWS, MinIO).
package keysource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// maxKeySize caps how much of the key object is read.
const maxKeySize = 64 << 10

var (
	ErrEmptyKey     = errors.New("signing key is empty")
	ErrKeyTooLarge  = errors.New("signing key object is too large")
	errNoBucketName = errors.New("s3 bucket is required when a key object is set")
)

// S3Settings locates the key object. An empty ObjectKey disables S3.
type S3Settings struct {
	Bucket       string
	ObjectKey    string
	Region       string
	BaseEndpoint string
	User         string
	Password     string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in, optFns...)
	}
)

// Resolve returns the key from S3 when s.ObjectKey is set and the literal
// otherwise.
func Resolve(ctx context.Context, literal string, s S3Settings) ([]byte, error) {
	if s.ObjectKey != "" {
		return LoadFromS3(ctx, s)
	}
	if literal == "" {
		return nil, ErrEmptyKey
	}
	return []byte(literal), nil
}

// LoadFromS3 downloads the key object. Surrounding whitespace is trimmed.
func LoadFromS3(ctx context.Context, s S3Settings) ([]byte, error) {
	if s.Bucket == "" {
		return nil, errNoBucketName
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(s.Region)}
	if s.User != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.User, s.Password, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.ObjectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, s.ObjectKey, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxKeySize+1))
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", s.Bucket, s.ObjectKey, err)
	}
	if len(data) > maxKeySize {
		return nil, ErrKeyTooLarge
	}

	key := bytes.TrimSpace(data)
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return key, nil
}
