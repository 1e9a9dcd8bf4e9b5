package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"barangayconnect/api/internal/config"
)

// ObjectStore holds uploaded receipt and document files.
type ObjectStore struct {
	client *minio.Client
	cfg    config.StorageConfig
}

func NewObjectStore(cfg config.StorageConfig) (*ObjectStore, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &ObjectStore{client: client, cfg: cfg}, nil
}

func (s *ObjectStore) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.cfg.BucketReceipts, s.cfg.BucketDocuments} {
		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("bucket exists %s: %w", bucket, err)
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
	}
	return nil
}

// PutFile stores an uploaded file under a date-partitioned key and returns
// the object key and a public URL.
func (s *ObjectStore) PutFile(ctx context.Context, bucket, id, filename, contentType string, r io.Reader, size int64) (string, string, error) {
	datePrefix := time.Now().UTC().Format("2006/01/02")
	objectKey := path.Join(datePrefix, fmt.Sprintf("%s_%s", id, filename))

	if _, err := s.client.PutObject(ctx, bucket, objectKey, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}

	return objectKey, s.publicURL(bucket, objectKey), nil
}

func (s *ObjectStore) publicURL(bucket, objectKey string) string {
	base := strings.TrimSuffix(s.cfg.Endpoint, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, objectKey)
}

func (s *ObjectStore) ReceiptBucket() string  { return s.cfg.BucketReceipts }
func (s *ObjectStore) DocumentBucket() string { return s.cfg.BucketDocuments }
