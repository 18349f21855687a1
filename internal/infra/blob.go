package infra

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"investigacion/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Blob persists opaque documents under flat, already-unique names.
type Blob interface {
	// Put stores data and returns its location (file path or object URL).
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

var ErrNombreBlobInvalido = errors.New("blob: nombre invalido")

func validBlobName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return ErrNombreBlobInvalido
	}
	return nil
}

// NewBlob builds the driver selected by STORAGE_DRIVER.
func NewBlob(ctx context.Context, cfg *config.Config) (Blob, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalBlob(cfg.UploadsPath), nil
	case "s3":
		return NewS3Blob(ctx, S3BlobConfig{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("blob: driver desconocido %q", cfg.StorageDriver)
	}
}

// ── Local disk ────────────────────────────────────────────────────────────────

type LocalBlob struct {
	dir string
}

func NewLocalBlob(dir string) *LocalBlob { return &LocalBlob{dir: dir} }

// Dir is the directory served under /uploads.
func (l *LocalBlob) Dir() string { return l.dir }

func (l *LocalBlob) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	if err := validBlobName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("blob: create dir: %w", err)
	}
	path := filepath.Join(l.dir, name)
	// O_EXCL: a name collision is an error, never an overwrite
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("blob: create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("blob: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("blob: close %s: %w", name, err)
	}
	return path, nil
}

func (l *LocalBlob) Get(_ context.Context, name string) ([]byte, error) {
	if err := validBlobName(name); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(l.dir, name))
}

func (l *LocalBlob) Delete(_ context.Context, name string) error {
	if err := validBlobName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ── S3 ────────────────────────────────────────────────────────────────────────

type S3BlobConfig struct {
	Bucket   string
	Region   string
	Endpoint string // optional, for MinIO/LocalStack
	Prefix   string
}

type S3Blob struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Blob(ctx context.Context, cfg S3BlobConfig) (*S3Blob, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("blob: load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Blob{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *S3Blob) key(name string) string { return s.prefix + name }

func (s *S3Blob) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if err := validBlobName(name); err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob: s3 put %s: %w", name, err)
	}
	return "s3://" + s.bucket + "/" + s.key(name), nil
}

func (s *S3Blob) Get(ctx context.Context, name string) ([]byte, error) {
	if err := validBlobName(name); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("blob: s3 get %s: %w", name, err)
	}
	defer func() { _ = out.Body.Close() }()
	return io.ReadAll(out.Body)
}

func (s *S3Blob) Delete(ctx context.Context, name string) error {
	if err := validBlobName(name); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("blob: s3 delete %s: %w", name, err)
	}
	return nil
}
