package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/transfer"
	"github.com/marafield/brandops/pkg/utils"
)

const (
	metaDialogURL    = "https://www.facebook.com/v21.0/dialog/oauth"
	metaGraphBaseURL = "https://graph.facebook.com/v21.0"
)

type MetaService interface {
	GetAuthURL(state string) string
	ConnectCallback(ctx context.Context, code string, brandID int64) error
}

// metaService connects a brand to its Facebook Page and the Instagram
// business account linked to that page. One OAuth dialog covers both
// platforms; tokens are stored encrypted.
type metaService struct {
	cfg        cfg.Config
	sa         repository.SocialAccountRepository
	httpClient *http.Client
	baseURL    string
}

func NewMetaService(c cfg.Config, sa repository.SocialAccountRepository) MetaService {
	return &metaService{
		cfg:        c,
		sa:         sa,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    metaGraphBaseURL,
	}
}

func (s *metaService) GetAuthURL(state string) string {
	params := url.Values{}
	params.Add("client_id", s.cfg.MetaAppID)
	params.Add("redirect_uri", s.cfg.MetaRedirectURI)
	params.Add("scope", "pages_manage_posts,pages_read_engagement,instagram_basic,instagram_content_publish")
	params.Add("response_type", "code")
	params.Add("state", state)

	return fmt.Sprintf("%s?%s", metaDialogURL, params.Encode())
}

func (s *metaService) ConnectCallback(ctx context.Context, code string, brandID int64) error {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return err
	}

	if brandID == 0 {
		err := errors.New("brand not found")
		slog.Info(err.Error())
		return err
	}

	userToken, err := s.exchangeCodeForToken(ctx, code)
	if err != nil {
		return err
	}

	longLived, expiresAt, err := s.exchangeForLongLivedToken(ctx, userToken)
	if err != nil {
		return err
	}

	pages, err := s.listPages(ctx, longLived)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return errors.New("no Facebook pages available for this token")
	}

	page := pages[0]

	encryptedPageToken, err := utils.Encrypt([]byte(page.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	fbAccount := &models.SocialAccount{
		BrandID:        brandID,
		Platform:       models.PlatformFacebook,
		AccountID:      page.ID,
		AccountName:    page.Name,
		AccessToken:    encryptedPageToken,
		TokenExpiresAt: expiresAt,
		IsActive:       true,
	}
	if _, err := s.sa.Create(ctx, nil, fbAccount); err != nil {
		return err
	}

	igAccountID, err := s.instagramBusinessAccount(ctx, page.ID, page.AccessToken)
	if err != nil {
		slog.Info(fmt.Sprintf("page %s has no linked Instagram account: %v", page.ID, err))
		return nil
	}

	username, picture, err := s.instagramProfile(ctx, igAccountID, page.AccessToken)
	if err != nil {
		slog.Info(err.Error())
	}

	igAccount := &models.SocialAccount{
		BrandID:         brandID,
		Platform:        models.PlatformInstagram,
		AccountID:       igAccountID,
		AccountName:     page.Name,
		AccountUsername: username,
		ProfilePicture:  picture,
		AccessToken:     encryptedPageToken,
		TokenExpiresAt:  expiresAt,
		IsActive:        true,
	}
	if _, err := s.sa.Create(ctx, nil, igAccount); err != nil {
		return err
	}

	return nil
}

func (s *metaService) exchangeCodeForToken(ctx context.Context, code string) (string, error) {
	reqURL := fmt.Sprintf("%s/oauth/access_token?client_id=%s&client_secret=%s&redirect_uri=%s&code=%s",
		s.baseURL,
		url.QueryEscape(s.cfg.MetaAppID),
		url.QueryEscape(s.cfg.MetaAppSecret),
		url.QueryEscape(s.cfg.MetaRedirectURI),
		url.QueryEscape(code),
	)

	var result transfer.MetaTokenResponse
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	if result.AccessToken == "" {
		return "", errors.New("no access token returned from Meta")
	}

	return result.AccessToken, nil
}

func (s *metaService) exchangeForLongLivedToken(ctx context.Context, token string) (string, time.Time, error) {
	reqURL := fmt.Sprintf("%s/oauth/access_token?grant_type=fb_exchange_token&client_id=%s&client_secret=%s&fb_exchange_token=%s",
		s.baseURL,
		url.QueryEscape(s.cfg.MetaAppID),
		url.QueryEscape(s.cfg.MetaAppSecret),
		url.QueryEscape(token),
	)

	var result transfer.MetaTokenResponse
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to get long-lived token: %w", err)
	}
	if result.AccessToken == "" {
		return "", time.Time{}, errors.New("no long-lived token returned from Meta")
	}

	expiresIn := result.ExpiresIn
	if expiresIn == 0 {
		// Long-lived page tokens report no expiry; refresh on reconnect.
		expiresIn = int64((60 * 24 * time.Hour).Seconds())
	}

	return result.AccessToken, time.Now().Add(time.Duration(expiresIn) * time.Second), nil
}

func (s *metaService) listPages(ctx context.Context, token string) ([]transfer.MetaPage, error) {
	reqURL := fmt.Sprintf("%s/me/accounts?access_token=%s", s.baseURL, url.QueryEscape(token))

	var result transfer.MetaPagesResponse
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	if result.Error != nil {
		return nil, fmt.Errorf("Meta API error: %s", result.Error.Message)
	}

	return result.Data, nil
}

func (s *metaService) instagramBusinessAccount(ctx context.Context, pageID, pageToken string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s?fields=instagram_business_account&access_token=%s",
		s.baseURL, pageID, url.QueryEscape(pageToken))

	var result struct {
		InstagramBusinessAccount struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
		Error *transfer.GraphError `json:"error,omitempty"`
	}
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("Meta API error: %s", result.Error.Message)
	}
	if result.InstagramBusinessAccount.ID == "" {
		return "", errors.New("no instagram_business_account on page")
	}

	return result.InstagramBusinessAccount.ID, nil
}

func (s *metaService) instagramProfile(ctx context.Context, igAccountID, pageToken string) (string, string, error) {
	reqURL := fmt.Sprintf("%s/%s?fields=username,profile_picture_url&access_token=%s",
		s.baseURL, igAccountID, url.QueryEscape(pageToken))

	var result struct {
		Username          string               `json:"username"`
		ProfilePictureURL string               `json:"profile_picture_url"`
		Error             *transfer.GraphError `json:"error,omitempty"`
	}
	if err := s.getJSON(ctx, reqURL, &result); err != nil {
		return "", "", err
	}
	if result.Error != nil {
		return "", "", fmt.Errorf("Meta API error: %s", result.Error.Message)
	}

	return result.Username, result.ProfilePictureURL, nil
}

func (s *metaService) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parsing response: %w", err)
	}

	return nil
}
