package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/transfer"
)

type fakeMediaAssetRepo struct {
	created []*models.MediaAsset
}

func (f *fakeMediaAssetRepo) Create(ctx context.Context, tx *sql.Tx, ma *models.MediaAsset) (int64, error) {
	f.created = append(f.created, ma)
	return int64(len(f.created)), nil
}

func (f *fakeMediaAssetRepo) GetByID(ctx context.Context, id int64) (*models.MediaAsset, error) {
	return nil, nil
}

func (f *fakeMediaAssetRepo) ListByBrandID(ctx context.Context, brandID int64) ([]*models.MediaAsset, error) {
	return nil, nil
}

func (f *fakeMediaAssetRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

func TestGenerateCaption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", r.Header.Get("Authorization"))
		}

		var req transfer.ChatCompletionRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) != 2 || req.Messages[1].Content != "pasta special" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Tonight we twirl."}},
			},
		})
	}))
	defer server.Close()

	s := &openAIService{
		cfg:        cfg.Config{OpenAIAPIKey: "test-key"},
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	caption, err := s.GenerateCaption(context.Background(), &transfer.CaptionRequest{
		Prompt:   "pasta special",
		Platform: models.PlatformInstagram,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caption != "Tonight we twirl." {
		t.Errorf("unexpected caption: %q", caption)
	}
}

func TestGenerateCaptionEmptyPrompt(t *testing.T) {
	s := &openAIService{cfg: cfg.Config{OpenAIAPIKey: "test-key"}}
	if _, err := s.GenerateCaption(context.Background(), &transfer.CaptionRequest{}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

// TestGenerateImageRehostsResult covers the full flow: the provider URL
// is fetched, written to brand storage, and the stored asset points at the
// durable URL rather than the provider one.
func TestGenerateImageRehostsResult(t *testing.T) {
	imageBytes := "png bytes"

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": server.URL + "/ephemeral/img.png"}},
		})
	})
	mux.HandleFunc("/ephemeral/img.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		io.WriteString(w, imageBytes)
	})

	putter := &fakePutter{}
	storage := newTestStorage(brandedConfig(), putter, server.Client())
	repo := &fakeMediaAssetRepo{}

	s := &openAIService{
		cfg:        cfg.Config{OpenAIAPIKey: "test-key"},
		storage:    storage,
		ma:         repo,
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	asset, err := s.GenerateImage(context.Background(), "dailydishdash", &transfer.ImageRequest{
		BrandID: 1,
		Prompt:  "a bowl of ramen",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if putter.callCount() != 1 {
		t.Fatalf("expected one storage write, got %d", putter.callCount())
	}
	if !strings.HasPrefix(asset.StorageKey, PrefixAIGenerated+"/") {
		t.Errorf("generated images should land under %s/, got %s", PrefixAIGenerated, asset.StorageKey)
	}
	if asset.SourceURL != server.URL+"/ephemeral/img.png" {
		t.Errorf("unexpected source URL: %s", asset.SourceURL)
	}
	if !strings.HasPrefix(asset.FileURL, "https://media.dailydishdash.com/") {
		t.Errorf("asset should carry the durable URL, got %s", asset.FileURL)
	}
	if asset.ID != 1 || len(repo.created) != 1 {
		t.Error("asset row should be created exactly once")
	}
}

func TestGenerateImageRehostFailure(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"url": server.URL + "/ephemeral/img.png"}},
		})
	})
	mux.HandleFunc("/ephemeral/img.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})

	repo := &fakeMediaAssetRepo{}
	s := &openAIService{
		cfg:        cfg.Config{OpenAIAPIKey: "test-key"},
		storage:    newTestStorage(brandedConfig(), &fakePutter{}, server.Client()),
		ma:         repo,
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	_, err := s.GenerateImage(context.Background(), "dailydishdash", &transfer.ImageRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error when the rehost fails")
	}
	if len(repo.created) != 0 {
		t.Error("no asset row may be created when the rehost fails")
	}
}
