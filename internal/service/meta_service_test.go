package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/pkg/utils"
)

type fakeSocialAccountRepo struct {
	created []*models.SocialAccount
}

func (f *fakeSocialAccountRepo) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	f.created = append(f.created, sa)
	return int64(len(f.created)), nil
}

func (f *fakeSocialAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	return nil, nil
}

func (f *fakeSocialAccountRepo) GetByBrandAndPlatform(ctx context.Context, brandID int64, platform string) (*models.SocialAccount, error) {
	return nil, nil
}

func (f *fakeSocialAccountRepo) ListByBrandID(ctx context.Context, brandID int64) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (f *fakeSocialAccountRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return nil
}

func (f *fakeSocialAccountRepo) Remove(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeSocialAccountRepo) byPlatform(platform string) *models.SocialAccount {
	for _, sa := range f.created {
		if sa.Platform == platform {
			return sa
		}
	}
	return nil
}

func TestMetaConnectCallback(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		token := "short-lived"
		if r.URL.Query().Get("grant_type") == "fb_exchange_token" {
			if r.URL.Query().Get("fb_exchange_token") != "short-lived" {
				t.Errorf("long-lived exchange should carry the short-lived token")
			}
			token = "long-lived"
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": token, "expires_in": 5183944})
	})
	mux.HandleFunc("/me/accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "long-lived" {
			t.Errorf("pages must be listed with the long-lived token")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"id": "page-1", "name": "Daily Dish Dash", "access_token": "page-token"},
			},
		})
	})
	mux.HandleFunc("/page-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"instagram_business_account": map[string]string{"id": "ig-55"},
		})
	})
	mux.HandleFunc("/ig-55", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"username":            "dailydishdash",
			"profile_picture_url": "https://example.com/pic.jpg",
		})
	})

	repo := &fakeSocialAccountRepo{}
	s := &metaService{
		cfg:        cfg.Config{MetaAppID: "app", MetaAppSecret: "secret", MetaRedirectURI: "https://cb", SecretKey: testSecretKey},
		sa:         repo,
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	if err := s.ConnectCallback(context.Background(), "auth-code", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 2 {
		t.Fatalf("expected facebook and instagram accounts, got %d", len(repo.created))
	}

	fb := repo.byPlatform(models.PlatformFacebook)
	if fb == nil || fb.AccountID != "page-1" || fb.BrandID != 1 {
		t.Fatalf("unexpected facebook account: %+v", fb)
	}
	token, err := utils.Decrypt(fb.AccessToken, []byte(testSecretKey))
	if err != nil || token != "page-token" {
		t.Errorf("stored token should decrypt to the page token, got %q (%v)", token, err)
	}

	ig := repo.byPlatform(models.PlatformInstagram)
	if ig == nil || ig.AccountID != "ig-55" {
		t.Fatalf("unexpected instagram account: %+v", ig)
	}
	if ig.AccountUsername != "dailydishdash" {
		t.Errorf("unexpected instagram username: %s", ig.AccountUsername)
	}
}

func TestMetaConnectCallbackNoInstagram(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok"})
	})
	mux.HandleFunc("/me/accounts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"id": "page-2", "name": "Handy Hub", "access_token": "pt"}},
		})
	})
	mux.HandleFunc("/page-2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})

	repo := &fakeSocialAccountRepo{}
	s := &metaService{
		cfg:        cfg.Config{MetaAppID: "app", MetaAppSecret: "secret", MetaRedirectURI: "https://cb", SecretKey: testSecretKey},
		sa:         repo,
		httpClient: server.Client(),
		baseURL:    server.URL,
	}

	// A page without a linked Instagram account still connects Facebook.
	if err := s.ConnectCallback(context.Background(), "auth-code", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 || repo.created[0].Platform != models.PlatformFacebook {
		t.Fatalf("expected only a facebook account, got %+v", repo.created)
	}
}

func TestMetaGetAuthURL(t *testing.T) {
	s := &metaService{cfg: cfg.Config{MetaAppID: "app-1", MetaRedirectURI: "https://cb"}}

	authURL := s.GetAuthURL("42")
	if !strings.HasPrefix(authURL, metaDialogURL+"?") {
		t.Errorf("unexpected dialog URL: %s", authURL)
	}
	for _, want := range []string{"client_id=app-1", "state=42", "instagram_content_publish"} {
		if !strings.Contains(authURL, want) {
			t.Errorf("auth URL missing %q: %s", want, authURL)
		}
	}
}
