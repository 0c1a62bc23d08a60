package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/transfer"
)

func brandedConfig() cfg.Config {
	return cfg.Config{
		SecretKey: testSecretKey,
		R2: cfg.R2{
			AccountID:  "shared-account",
			AccessKey:  "shared-key",
			SecretKey:  "shared-secret",
			BucketName: "shared-bucket",
		},
		BrandR2: map[string]cfg.R2{
			"dailydishdash": {
				AccountID:     "ddd-account",
				AccessKey:     "ddd-key",
				SecretKey:     "ddd-secret",
				BucketName:    "ddd-bucket",
				PublicBaseURL: "https://media.dailydishdash.com",
			},
			"wallsofwill": {
				AccountID:  "wow-account",
				AccessKey:  "wow-key",
				SecretKey:  "wow-secret",
				BucketName: "wow-bucket",
			},
		},
	}
}

func TestResolveBrandBucket(t *testing.T) {
	s := newTestStorage(brandedConfig(), &fakePutter{}, http.DefaultClient)

	if got := s.Resolve("wallsofwill").BucketName; got != "wow-bucket" {
		t.Errorf("expected wow-bucket, got %s", got)
	}
	if got := s.Resolve("handyhub").BucketName; got != "shared-bucket" {
		t.Errorf("unknown slug should fall back to the shared bucket, got %s", got)
	}
	if got := s.Resolve("").BucketName; got != "ddd-bucket" {
		t.Errorf("empty slug should resolve to the default brand, got %s", got)
	}
}

func TestPublicURLPriority(t *testing.T) {
	s := newTestStorage(brandedConfig(), &fakePutter{}, http.DefaultClient)

	withBase := cfg.R2{PublicBaseURL: "https://media.example.com/", BucketName: "b", AccountID: "a"}
	if got := s.PublicURL(withBase, "uploads/x.png"); got != "https://media.example.com/uploads/x.png" {
		t.Errorf("configured base URL should win, got %s", got)
	}

	withAccount := cfg.R2{AccountID: "acct", BucketName: "b"}
	if got := s.PublicURL(withAccount, "k"); got != "https://acct.r2.cloudflarestorage.com/b/k" {
		t.Errorf("unexpected endpoint URL: %s", got)
	}

	bare := cfg.R2{BucketName: "b"}
	if got := s.PublicURL(bare, "k"); got != "https://pub-b.r2.dev/k" {
		t.Errorf("unexpected public bucket URL: %s", got)
	}
}

func TestUploadFromURL(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("fake image bytes"))
	}))
	defer source.Close()

	putter := &fakePutter{}
	s := newTestStorage(brandedConfig(), putter, source.Client())

	result := s.UploadFromURL(context.Background(), source.URL+"/img.jpg", "My Post.jpg", "dailydishdash", PrefixAIGenerated)
	if !result.Success {
		t.Fatalf("expected success, got [%s] %s", result.ErrorCode, result.Error)
	}

	if putter.callCount() != 1 {
		t.Fatalf("expected one put, got %d", putter.callCount())
	}
	put := putter.calls[0]
	if *put.Bucket != "ddd-bucket" {
		t.Errorf("expected ddd-bucket, got %s", *put.Bucket)
	}
	if *put.Key != "ai-generated/1700000000-my-post.png" {
		t.Errorf("unexpected key: %s", *put.Key)
	}
	if *put.ContentType != "image/jpeg" {
		t.Errorf("unexpected content type: %s", *put.ContentType)
	}
	if put.Metadata["brand"] != "dailydishdash" {
		t.Errorf("unexpected brand metadata: %s", put.Metadata["brand"])
	}

	if result.PublicURL != "https://media.dailydishdash.com/ai-generated/1700000000-my-post.png" {
		t.Errorf("unexpected public URL: %s", result.PublicURL)
	}
	if result.FileSize != int64(len("fake image bytes")) {
		t.Errorf("unexpected file size: %d", result.FileSize)
	}
}

func TestUploadFromURLDownloadFailure(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer source.Close()

	putter := &fakePutter{}
	s := newTestStorage(brandedConfig(), putter, source.Client())

	result := s.UploadFromURL(context.Background(), source.URL+"/gone.png", "x", "dailydishdash", PrefixAIGenerated)
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != transfer.PublishErrDownloadFailed {
		t.Errorf("expected download_failed, got %s", result.ErrorCode)
	}
	if !strings.Contains(result.Error, "404") {
		t.Errorf("error should carry the status code, got %q", result.Error)
	}
	if putter.callCount() != 0 {
		t.Error("nothing should reach storage when the download fails")
	}
}

func TestUploadPutFailure(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	defer source.Close()

	putter := &fakePutter{putErr: context.DeadlineExceeded}
	s := newTestStorage(brandedConfig(), putter, source.Client())

	result := s.UploadFromURL(context.Background(), source.URL, "x", "wallsofwill", PrefixAIGenerated)
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != transfer.PublishErrPutFailed {
		t.Errorf("expected put_failed, got %s", result.ErrorCode)
	}
}

func TestUploadStorageUnavailable(t *testing.T) {
	s := &StorageService{
		config:     brandedConfig(),
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	s.newClient = func(cfg.R2) (s3Putter, error) {
		return nil, context.Canceled
	}

	result := s.UploadBytes(context.Background(), "wallsofwill", "uploads/k", []byte("x"), "image/png")
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != transfer.PublishErrStorageUnavailable {
		t.Errorf("expected storage_unavailable, got %s", result.ErrorCode)
	}
}

func TestUploadKeysAreDistinct(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	defer source.Close()

	putter := &fakePutter{}
	s := newTestStorage(brandedConfig(), putter, source.Client())

	ts := int64(1700000000)
	s.now = func() time.Time {
		ts++
		return time.Unix(ts, 0)
	}

	first := s.UploadFromURL(context.Background(), source.URL, "same", "dailydishdash", PrefixAIGenerated)
	second := s.UploadFromURL(context.Background(), source.URL, "same", "dailydishdash", PrefixAIGenerated)
	if !first.Success || !second.Success {
		t.Fatal("expected both uploads to succeed")
	}
	if first.StorageKey == second.StorageKey {
		t.Errorf("keys should be distinct, both were %s", first.StorageKey)
	}
}

func TestSanitizeHint(t *testing.T) {
	cases := map[string]string{
		"My Photo.jpg":  "my-photo",
		"../../etc/x":   "etcx",
		"":              "image",
		"###":           "image",
		"already-clean": "already-clean",
	}
	for in, want := range cases {
		if got := sanitizeHint(in); got != want {
			t.Errorf("sanitizeHint(%q) = %q, want %q", in, got, want)
		}
	}
}
