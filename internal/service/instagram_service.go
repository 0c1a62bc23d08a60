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

const (
	instagramGraphBaseURL = "https://graph.instagram.com/v21.0"

	containerPollInterval = 2 * time.Second
	containerPollTimeout  = 30 * time.Second
)

// ephemeralImageHosts are generative-image hosts whose URLs expire within
// hours. Images from these hosts must be rehosted before Instagram's
// servers fetch them asynchronously.
var ephemeralImageHosts = []string{
	"oaidalleapiprodscus.blob.core.windows.net",
	"dalleprodsec.blob.core.windows.net",
}

type InstagramService interface {
	PublishPost(ctx context.Context, post *models.SocialPost, brand *models.Brand, acc *models.SocialAccount, mediaURLs []string) *transfer.PublishResult
}

// instagramService drives the three-phase container protocol: create the
// media container, poll until the platform finishes processing it, then
// publish. Text-only posts are rejected up front.
type instagramService struct {
	cfg          cfg.Config
	storage      *StorageService
	httpClient   *http.Client
	baseURL      string
	pollInterval time.Duration
	pollTimeout  time.Duration
	now          func() time.Time
}

func NewInstagramService(c cfg.Config, storage *StorageService) InstagramService {
	return &instagramService{
		cfg:          c,
		storage:      storage,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      instagramGraphBaseURL,
		pollInterval: containerPollInterval,
		pollTimeout:  containerPollTimeout,
		now:          time.Now,
	}
}

func (s *instagramService) PublishPost(ctx context.Context, post *models.SocialPost, brand *models.Brand, acc *models.SocialAccount, mediaURLs []string) *transfer.PublishResult {
	if acc == nil || acc.AccessToken == "" || acc.AccountID == "" {
		return transfer.PublishFailure(transfer.PublishErrMissingCredentials,
			"instagram account is missing an access token or account id")
	}

	// Instagram offers no native scheduling for this post type. A future
	// schedule is accepted without touching the network; the due-post
	// sweeper re-submits the post once its time has come.
	if IsFutureSchedule(post.ScheduledTime, s.now()) {
		return transfer.PublishSuccess(fmt.Sprintf("scheduled-%d", post.ID))
	}

	if len(mediaURLs) == 0 {
		return transfer.PublishFailure(transfer.PublishErrImageRequired,
			"instagram posts require an image")
	}

	accessToken, err := utils.Decrypt(acc.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrMissingCredentials,
			"unable to decrypt instagram access token")
	}

	slug := ""
	if brand != nil {
		slug = brand.Slug
	}

	imageURL := mediaURLs[0]
	if isEphemeralImageURL(imageURL) {
		// A rehost failure is a hard stop: the ephemeral URL could expire
		// mid-poll, after the container already references it.
		rehost := s.storage.UploadFromURL(ctx, imageURL, "post", slug, PrefixAIGenerated)
		if !rehost.Success {
			return transfer.PublishFailure(rehost.ErrorCode, rehost.Error)
		}
		imageURL = rehost.PublicURL
	}

	caption := BuildMessage(post.Content, post.Hashtags)

	containerID, failure := s.createContainer(ctx, acc.AccountID, imageURL, caption, accessToken)
	if failure != nil {
		return failure
	}

	if failure := s.waitForContainer(ctx, containerID, accessToken); failure != nil {
		return failure
	}

	return s.publishContainer(ctx, acc.AccountID, containerID, accessToken)
}

func (s *instagramService) createContainer(ctx context.Context, accountID, imageURL, caption, accessToken string) (string, *transfer.PublishResult) {
	endpoint := fmt.Sprintf("%s/%s/media", s.baseURL, accountID)

	data := url.Values{}
	data.Set("image_url", imageURL)
	data.Set("caption", caption)
	data.Set("access_token", accessToken)

	result, status, err := s.postForm(ctx, endpoint, data)
	if err != nil {
		slog.Info(err.Error())
		return "", transfer.PublishFailure(transfer.PublishErrContainerCreateFail, err.Error())
	}

	if status < 200 || status > 299 || result.ID == "" {
		msg := fmt.Sprintf("container creation failed with status %d", status)
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return "", transfer.PublishFailure(transfer.PublishErrContainerCreateFail, msg)
	}

	return result.ID, nil
}

// waitForContainer polls the container status every pollInterval until it
// reaches FINISHED, fails with ERROR, exceeds pollTimeout, or the context
// is cancelled. Transient status-check failures count as one more wait.
func (s *instagramService) waitForContainer(ctx context.Context, containerID, accessToken string) *transfer.PublishResult {
	deadline := time.Now().Add(s.pollTimeout)

	for {
		status, err := s.containerStatus(ctx, containerID, accessToken)
		if err != nil {
			slog.Info(fmt.Sprintf("container %s status check failed, retrying: %v", containerID, err))
		} else {
			switch status {
			case transfer.ContainerFinished:
				return nil
			case transfer.ContainerError:
				return transfer.PublishFailure(transfer.PublishErrContainerError,
					fmt.Sprintf("container %s failed processing on Instagram's side", containerID))
			}
		}

		if time.Now().After(deadline) {
			return transfer.PublishFailure(transfer.PublishErrContainerTimeout,
				fmt.Sprintf("container %s not ready after %s", containerID, s.pollTimeout))
		}

		select {
		case <-ctx.Done():
			return transfer.PublishFailure(transfer.PublishErrPublishFailed,
				fmt.Sprintf("publish cancelled: %v", ctx.Err()))
		case <-time.After(s.pollInterval):
		}
	}
}

func (s *instagramService) containerStatus(ctx context.Context, containerID, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=status&access_token=%s",
		s.baseURL, containerID, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	var status transfer.ContainerStatusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return "", fmt.Errorf("error parsing response: %w", err)
	}

	if status.Error != nil {
		return "", fmt.Errorf("Instagram API error: %s", status.Error.Message)
	}

	return transfer.NormalizeContainerStatus(status.Status), nil
}

func (s *instagramService) publishContainer(ctx context.Context, accountID, containerID, accessToken string) *transfer.PublishResult {
	endpoint := fmt.Sprintf("%s/%s/media_publish", s.baseURL, accountID)

	data := url.Values{}
	data.Set("creation_id", containerID)
	data.Set("access_token", accessToken)

	result, status, err := s.postForm(ctx, endpoint, data)
	if err != nil {
		slog.Info(err.Error())
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, err.Error())
	}

	if status < 200 || status > 299 || result.ID == "" {
		msg := fmt.Sprintf("media publish failed with status %d", status)
		if result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		return transfer.PublishFailure(transfer.PublishErrPublishFailed, msg)
	}

	return transfer.PublishSuccess(result.ID)
}

func (s *instagramService) postForm(ctx context.Context, endpoint string, data url.Values) (*transfer.GraphResponse, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading response body: %w", err)
	}

	var result transfer.GraphResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("error parsing response: %w", err)
	}

	return &result, resp.StatusCode, nil
}

func isEphemeralImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, host := range ephemeralImageHosts {
		if strings.EqualFold(u.Host, host) {
			return true
		}
	}
	return false
}
