package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/transfer"
	"github.com/marafield/brandops/pkg/utils"
)

const facebookGraphBaseURL = "https://graph.facebook.com/v21.0"

type FacebookService interface {
	PublishPost(ctx context.Context, post *models.SocialPost, brand *models.Brand, acc *models.SocialAccount, mediaURLs []string) *transfer.PublishResult
}

// facebookService publishes to a Facebook Page. A single Graph call:
// image posts go to /photos, text-only posts to /feed (the two endpoints
// are not interchangeable). Scheduling is delegated to the platform via
// scheduled_publish_time.
type facebookService struct {
	cfg        cfg.Config
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

func NewFacebookService(c cfg.Config) FacebookService {
	return &facebookService{
		cfg:        c,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    facebookGraphBaseURL,
		now:        time.Now,
	}
}

func (s *facebookService) PublishPost(ctx context.Context, post *models.SocialPost, brand *models.Brand, acc *models.SocialAccount, mediaURLs []string) *transfer.PublishResult {
	if acc == nil || acc.AccessToken == "" || acc.AccountID == "" {
		return transfer.PublishFailure(transfer.PublishErrMissingCredentials,
			"facebook account is missing an access token or page id")
	}

	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrMissingCredentials,
			"unable to decrypt facebook access token")
	}

	data := url.Values{}
	data.Set("message", BuildMessage(post.Content, post.Hashtags))
	data.Set("access_token", accessToken)

	endpoint := fmt.Sprintf("%s/%s/feed", s.baseURL, acc.AccountID)
	if len(mediaURLs) > 0 {
		// The photos endpoint fetches the image server-side, so the URL
		// must be durable; callers rehost ephemeral URLs before this point.
		endpoint = fmt.Sprintf("%s/%s/photos", s.baseURL, acc.AccountID)
		data.Set("url", mediaURLs[0])
	}

	if IsFutureSchedule(post.ScheduledTime, s.now()) {
		data.Set("published", "false")
		data.Set("scheduled_publish_time", fmt.Sprintf("%d", post.ScheduledTime.Unix()))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, fmt.Sprintf("error creating request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, fmt.Sprintf("HTTP request error: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, fmt.Sprintf("error reading response body: %v", err))
	}

	var result transfer.GraphResponse
	if err := json.Unmarshal(body, &result); err != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, fmt.Sprintf("error parsing response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("Facebook API error: %d", resp.StatusCode)
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, msg)
	}

	if result.ID == "" {
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, "no post id returned from Facebook")
	}

	return transfer.PublishSuccess(result.ID)
}
