// Package docstore wraps MinIO/S3 interactions for applicant documents.
package docstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/hartline-properties/leasegate/internal/config"
	"github.com/hartline-properties/leasegate/internal/model"
	pdfutil "github.com/hartline-properties/leasegate/internal/pdf"
)

// Storage persists applicant documents in the configured bucket.
type Storage struct {
	client *minio.Client
	bucket string
	region string
	log    *zap.Logger
}

// New creates a MinIO client from the Config.
func New(cfg *config.Config, log *zap.Logger) (*Storage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &Storage{
		client: client,
		bucket: cfg.DocumentsBucket,
		region: cfg.S3Region,
		log:    log,
	}, nil
}

// EnsureBucket makes sure the documents bucket exists before use.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Upload decodes one data-URI document and writes it under
// {applicationID}/{docType}.{ext}. Any decode or storage failure is logged
// and reported as a nil reference; a missing document URL is an accepted
// outcome of a submission, never a reason to fail it.
func (s *Storage) Upload(ctx context.Context, applicationID, docType, dataURI string) *string {
	if dataURI == "" {
		return nil
	}
	uri, err := model.ParseDataURI(dataURI)
	if err != nil {
		s.warn(applicationID, docType, "parse data uri", err)
		return nil
	}
	data, err := uri.Decode()
	if err != nil {
		s.warn(applicationID, docType, "decode document", err)
		return nil
	}
	if uri.MIME == "application/pdf" {
		if err := pdfutil.Verify(data); err != nil {
			s.warn(applicationID, docType, "verify pdf", err)
			return nil
		}
	}
	objectKey := fmt.Sprintf("%s/%s.%s", applicationID, docType, extensionFor(uri.MIME))
	if err := s.put(ctx, objectKey, data, uri.MIME); err != nil {
		s.warn(applicationID, docType, "store document", err)
		return nil
	}
	return &objectKey
}

// put writes the object, refusing to overwrite. Application ids are freshly
// generated per request, so an existing object at the key means a logic
// error upstream.
func (s *Storage) put(ctx context.Context, objectKey string, data []byte, contentType string) error {
	if _, err := s.client.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{}); err == nil {
		return fmt.Errorf("object %s already exists", objectKey)
	} else if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" && resp.Code != "NoSuchBucket" {
		return fmt.Errorf("stat object %s: %w", objectKey, err)
	}
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return nil
}

func (s *Storage) warn(applicationID, docType, stage string, err error) {
	s.log.Warn("document upload failed",
		zap.String("applicationId", applicationID),
		zap.String("documentType", docType),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

// extensionFor maps a document MIME type to the stored file extension. Word
// formats collapse to "doc"; everything else keeps its subtype.
func extensionFor(mime string) string {
	switch {
	case mime == "application/pdf":
		return "pdf"
	case strings.Contains(mime, "word"):
		return "doc"
	default:
		if _, sub, ok := strings.Cut(mime, "/"); ok {
			return sub
		}
		return "bin"
	}
}
