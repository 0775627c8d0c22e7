package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store saves an object and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type S3Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewS3Store(cfg S3Config) *S3Store {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// MinIO / R2
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Store{client: client, bucket: cfg.Bucket, publicBase: base}
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicBase + "/" + key, nil
}

// Uploader runs the photo pipeline for one queue entry.
type Uploader struct {
	proc  Processor
	store Store
}

func NewUploader(proc Processor, store Store) *Uploader {
	return &Uploader{proc: proc, store: store}
}

func (u *Uploader) Upload(ctx context.Context, barberID uint, entryID string, r io.Reader) (string, error) {
	data, err := u.proc.Process(r)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("barbers/%d/entries/%s/%s.webp", barberID, entryID, uuid.NewString())
	return u.store.Put(ctx, key, data, "image/webp")
}

var _ Store = (*S3Store)(nil)
