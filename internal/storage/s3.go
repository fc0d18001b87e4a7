package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"barbershop/config"
)

var (
	ErrEmptyFile    = errors.New("пустые данные файла")
	ErrNotAnImage   = errors.New("файл не является изображением")
	ErrFileTooLarge = errors.New("файл слишком большой")
	ErrForeignURL   = errors.New("URL не принадлежит хранилищу")
)

type S3Storage struct {
	client  *minio.Client
	cfg     config.S3Config
	baseURL string
	logger  *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания бакета: %w", err)
		}
		logger.Info("создан бакет для файлов сайта", zap.String("bucket", cfg.Bucket))
	}

	return &S3Storage{
		client:  client,
		cfg:     cfg,
		baseURL: publicBaseURL(cfg),
		logger:  logger,
	}, nil
}

// publicBaseURL is the prefix every stored object URL starts with.
func publicBaseURL(cfg config.S3Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
}

// validateImage checks size and MIME type and returns the content type and extension.
func validateImage(data []byte, filename string, maxBytes int64) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyFile
	}

	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", "", ErrFileTooLarge
	}

	fileType := http.DetectContentType(data)
	if !strings.HasPrefix(fileType, "image/") {
		return "", "", ErrNotAnImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		switch fileType {
		case "image/jpeg":
			ext = ".jpg"
		case "image/png":
			ext = ".png"
		case "image/gif":
			ext = ".gif"
		case "image/webp":
			ext = ".webp"
		default:
			ext = ".bin"
		}
	}

	return fileType, ext, nil
}

func (s *S3Storage) UploadFile(ctx context.Context, data []byte, filename, folder string) (string, error) {
	fileType, ext, err := validateImage(data, filename, int64(s.cfg.MaxUploadMB)<<20)
	if err != nil {
		return "", err
	}

	objectName := path.Join(folder, uuid.New().String()+ext)

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  fileType,
		CacheControl: "public, max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки файла в S3: %w", err)
	}

	return s.baseURL + "/" + objectName, nil
}

func (s *S3Storage) DeleteFile(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}

	objectName, err := objectNameFromURL(s.baseURL, fileURL)
	if err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}

	return nil
}

func objectNameFromURL(baseURL, fileURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("некорректный базовый URL хранилища: %w", err)
	}

	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("некорректный URL файла %s: %w", fileURL, err)
	}

	prefix := strings.TrimRight(base.Path, "/") + "/"
	if u.Host != base.Host || !strings.HasPrefix(u.Path, prefix) {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, fileURL)
	}

	objectName := strings.TrimPrefix(u.Path, prefix)
	if objectName == "" {
		return "", fmt.Errorf("некорректный URL файла: %s", fileURL)
	}

	return objectName, nil
}
