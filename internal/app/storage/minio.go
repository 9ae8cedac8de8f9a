package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const minioScheme = "minio://"

// MinioStore keeps audio in a MinIO (or any S3-compatible) bucket, for
// deployments where the API host and the transcription host do not share a
// disk. Storage paths are recorded as minio://<bucket>/<key>.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStoreFromEnv configures the client from MINIO_* environment
// variables and ensures the bucket exists.
func NewMinioStoreFromEnv(ctx context.Context) (*MinioStore, error) {
	endpoint := envOr("MINIO_ENDPOINT", "localhost:9000")
	accessKey := envOr("MINIO_ACCESS_KEY", "minioadmin")
	secretKey := envOr("MINIO_SECRET_KEY", "minioadmin")
	bucket := envOr("MINIO_BUCKET", "healthvoice-audio")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

func (s *MinioStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	key := fmt.Sprintf("audio/%d-%s", time.Now().UnixNano(), SanitizeFilename(filename))
	_, err := s.client.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	return minioScheme + s.bucket + "/" + key, nil
}

func (s *MinioStore) Fetch(ctx context.Context, storagePath string) (string, func(), error) {
	bucket, key, err := splitMinioPath(storagePath)
	if err != nil {
		return "", nil, err
	}
	tmp, err := os.CreateTemp("", "healthvoice-audio-*"+filepath.Ext(key))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer obj.Close()
	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to download audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	return tmp.Name(), cleanup, nil
}

func (s *MinioStore) Remove(ctx context.Context, storagePath string) error {
	bucket, key, err := splitMinioPath(storagePath)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove audio: %w", err)
	}
	return nil
}

func splitMinioPath(storagePath string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(storagePath, minioScheme)
	if trimmed == storagePath {
		return "", "", fmt.Errorf("not a minio storage path: %s", storagePath)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed minio storage path: %s", storagePath)
	}
	return parts[0], parts[1], nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
