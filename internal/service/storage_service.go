package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/transfer"
)

// Storage key prefixes. Rehosted generative images and operator uploads
// live under separate namespaces in each brand bucket.
const (
	PrefixAIGenerated = "ai-generated"
	PrefixUploads     = "uploads"
)

// DefaultBrandSlug is used when a caller omits the brand. Inherited
// behavior from the first single-brand deployment.
const DefaultBrandSlug = "dailydishdash"

type s3Putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// StorageService resolves brand-scoped R2 credentials and moves media into
// durable storage. Rehosting exists because generative-image URLs expire
// within hours, while Instagram's container processing needs the URL to
// stay fetchable for the whole create-poll-publish window.
type StorageService struct {
	config     cfg.Config
	httpClient *http.Client
	newClient  func(cfg.R2) (s3Putter, error)
	now        func() time.Time
}

func NewStorageService(c cfg.Config) *StorageService {
	s := &StorageService{
		config:     c,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		now:        time.Now,
	}
	s.newClient = s.r2Client
	return s
}

// Resolve maps a brand slug to its storage credentials. Unknown slugs fall
// back to the shared bucket.
func (s *StorageService) Resolve(slug string) cfg.R2 {
	if slug == "" {
		slug = DefaultBrandSlug
	}
	if bs, ok := s.config.BrandR2[slug]; ok {
		return bs
	}
	return s.config.R2
}

// PublicURL derives the stable public URL for a stored object. Priority:
// configured public base, then the storage endpoint, then the conventional
// public bucket pattern.
func (s *StorageService) PublicURL(bs cfg.R2, key string) string {
	if bs.PublicBaseURL != "" {
		return strings.TrimSuffix(bs.PublicBaseURL, "/") + "/" + key
	}
	if bs.AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com/%s/%s", bs.AccountID, bs.BucketName, key)
	}
	return fmt.Sprintf("https://pub-%s.r2.dev/%s", bs.BucketName, key)
}

func (s *StorageService) r2Client(bs cfg.R2) (s3Putter, error) {
	if bs.AccountID == "" || bs.AccessKey == "" || bs.SecretKey == "" || bs.BucketName == "" {
		return nil, errors.New("storage credentials are not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(bs.AccessKey, bs.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", bs.AccountID))
	}), nil
}

// UploadFromURL fetches bytes from sourceURL and persists them under the
// brand's bucket, returning a tagged result with the durable public URL.
// One attempt per call, no retries.
func (s *StorageService) UploadFromURL(ctx context.Context, sourceURL, filenameHint, brandSlug, prefix string) *transfer.UploadResult {
	if brandSlug == "" {
		brandSlug = DefaultBrandSlug
	}
	if prefix == "" {
		prefix = PrefixUploads
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		slog.Info(err.Error())
		return transfer.UploadFailure(transfer.PublishErrDownloadFailed, fmt.Sprintf("invalid source url: %v", err))
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return transfer.UploadFailure(transfer.PublishErrDownloadFailed, fmt.Sprintf("failed to download source: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transfer.UploadFailure(transfer.PublishErrDownloadFailed,
			fmt.Sprintf("source download failed with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return transfer.UploadFailure(transfer.PublishErrDownloadFailed, fmt.Sprintf("failed to read source body: %v", err))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	key := fmt.Sprintf("%s/%d-%s.png", prefix, s.now().Unix(), sanitizeHint(filenameHint))

	return s.put(ctx, brandSlug, key, body, contentType)
}

// UploadBytes persists an already-read payload (media library uploads).
func (s *StorageService) UploadBytes(ctx context.Context, brandSlug, key string, data []byte, contentType string) *transfer.UploadResult {
	if brandSlug == "" {
		brandSlug = DefaultBrandSlug
	}
	return s.put(ctx, brandSlug, key, data, contentType)
}

func (s *StorageService) put(ctx context.Context, brandSlug, key string, data []byte, contentType string) *transfer.UploadResult {
	bs := s.Resolve(brandSlug)

	client, err := s.newClient(bs)
	if err != nil {
		slog.Info(err.Error())
		return transfer.UploadFailure(transfer.PublishErrStorageUnavailable, err.Error())
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bs.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"brand":       brandSlug,
			"uploaded-at": s.now().UTC().Format(time.RFC3339),
		},
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return transfer.UploadFailure(transfer.PublishErrPutFailed, fmt.Sprintf("storage write failed: %v", err))
	}

	return &transfer.UploadResult{
		Success:    true,
		StorageKey: key,
		PublicURL:  s.PublicURL(bs, key),
		FileType:   contentType,
		FileSize:   int64(len(data)),
	}
}

// sanitizeHint reduces a filename hint to a safe key fragment.
func sanitizeHint(hint string) string {
	hint = strings.TrimSuffix(hint, path.Ext(hint))
	if hint == "" {
		hint = "image"
	}

	var b strings.Builder
	for _, r := range strings.ToLower(hint) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "image"
	}
	return b.String()
}
