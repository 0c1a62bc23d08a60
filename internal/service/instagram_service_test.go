package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	cfg "github.com/marafield/brandops/configs"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/transfer"
)

func newTestInstagram(server *httptest.Server, storage *StorageService) *instagramService {
	return &instagramService{
		cfg:          cfg.Config{SecretKey: testSecretKey},
		storage:      storage,
		httpClient:   server.Client(),
		baseURL:      server.URL,
		pollInterval: time.Millisecond,
		pollTimeout:  50 * time.Millisecond,
		now:          func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func instagramAccount(t *testing.T) *models.SocialAccount {
	return &models.SocialAccount{
		Platform:    models.PlatformInstagram,
		AccountID:   "ig-1",
		AccessToken: encryptToken(t, "ig-token"),
		IsActive:    true,
	}
}

// graphScript serves the container protocol: create, N status polls, then
// publish.
type graphScript struct {
	statuses     []string
	statusCalls  atomic.Int64
	createCalls  atomic.Int64
	publishCalls atomic.Int64
}

func (g *graphScript) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/ig-1/media"):
			g.createCalls.Add(1)
			r.ParseForm()
			if r.Form.Get("image_url") == "" {
				t.Error("container creation requires image_url")
			}
			if r.Form.Get("access_token") != "ig-token" {
				t.Errorf("expected decrypted token, got %s", r.Form.Get("access_token"))
			}
			json.NewEncoder(w).Encode(transfer.GraphResponse{ID: "container-1"})

		case strings.HasSuffix(r.URL.Path, "/ig-1/media_publish"):
			g.publishCalls.Add(1)
			r.ParseForm()
			if r.Form.Get("creation_id") != "container-1" {
				t.Errorf("unexpected creation_id: %s", r.Form.Get("creation_id"))
			}
			json.NewEncoder(w).Encode(transfer.GraphResponse{ID: "media-99"})

		case strings.Contains(r.URL.Path, "container-1"):
			n := g.statusCalls.Add(1)
			status := g.statuses[len(g.statuses)-1]
			if int(n) <= len(g.statuses) {
				status = g.statuses[n-1]
			}
			json.NewEncoder(w).Encode(transfer.ContainerStatusResponse{ID: "container-1", Status: status})

		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
		}
	}
}

func TestInstagramPublishPollsUntilFinished(t *testing.T) {
	script := &graphScript{statuses: []string{"IN_PROGRESS", "IN_PROGRESS", "FINISHED"}}
	server := httptest.NewServer(script.handler(t))
	defer server.Close()

	s := newTestInstagram(server, nil)
	post := &models.SocialPost{ID: 7, Platform: models.PlatformInstagram, Content: "Hi", Hashtags: []string{"#x"}}

	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t),
		[]string{"https://media.example.com/img.png"})
	if !result.Success {
		t.Fatalf("expected success, got [%s] %s", result.ErrorCode, result.Error)
	}
	if result.PlatformPostID != "media-99" {
		t.Errorf("expected media-99, got %s", result.PlatformPostID)
	}
	if got := script.statusCalls.Load(); got != 3 {
		t.Errorf("expected 3 status polls, got %d", got)
	}
	if script.publishCalls.Load() != 1 {
		t.Error("publish should run exactly once")
	}
}

func TestInstagramContainerError(t *testing.T) {
	script := &graphScript{statuses: []string{"ERROR"}}
	server := httptest.NewServer(script.handler(t))
	defer server.Close()

	s := newTestInstagram(server, nil)
	post := &models.SocialPost{ID: 8, Platform: models.PlatformInstagram, Content: "Hi"}

	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t),
		[]string{"https://media.example.com/img.png"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != transfer.PublishErrContainerError {
		t.Errorf("expected container_error, got %s", result.ErrorCode)
	}
	if script.publishCalls.Load() != 0 {
		t.Error("a failed container must never be published")
	}
}

func TestInstagramContainerTimeout(t *testing.T) {
	script := &graphScript{statuses: []string{"IN_PROGRESS"}}
	server := httptest.NewServer(script.handler(t))
	defer server.Close()

	s := newTestInstagram(server, nil)
	s.pollTimeout = 5 * time.Millisecond

	post := &models.SocialPost{ID: 9, Platform: models.PlatformInstagram, Content: "Hi"}
	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t),
		[]string{"https://media.example.com/img.png"})
	if result.ErrorCode != transfer.PublishErrContainerTimeout {
		t.Errorf("expected container_timeout, got %s", result.ErrorCode)
	}
	if script.publishCalls.Load() != 0 {
		t.Error("a timed-out container must never be published")
	}
}

func TestInstagramUnknownStatusKeepsPolling(t *testing.T) {
	script := &graphScript{statuses: []string{"EXPIRED_WEIRD_STATE", "FINISHED"}}
	server := httptest.NewServer(script.handler(t))
	defer server.Close()

	s := newTestInstagram(server, nil)
	post := &models.SocialPost{ID: 10, Platform: models.PlatformInstagram, Content: "Hi"}

	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t),
		[]string{"https://media.example.com/img.png"})
	if !result.Success {
		t.Fatalf("unknown status should poll again, got [%s] %s", result.ErrorCode, result.Error)
	}
}

func TestInstagramFutureScheduleSkipsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("a future schedule must not touch the network")
	}))
	defer server.Close()

	s := newTestInstagram(server, nil)
	post := &models.SocialPost{
		ID:            11,
		Platform:      models.PlatformInstagram,
		Content:       "Later",
		ScheduledTime: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t),
		[]string{"https://media.example.com/img.png"})
	if !result.Success {
		t.Fatalf("expected deferred acceptance, got [%s] %s", result.ErrorCode, result.Error)
	}
	if result.PlatformPostID != "scheduled-11" {
		t.Errorf("expected scheduled-11, got %s", result.PlatformPostID)
	}
}

func TestInstagramRequiresImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for a text-only post")
	}))
	defer server.Close()

	s := newTestInstagram(server, nil)
	post := &models.SocialPost{ID: 12, Platform: models.PlatformInstagram, Content: "Text only"}

	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t), nil)
	if result.ErrorCode != transfer.PublishErrImageRequired {
		t.Errorf("expected image_required, got %s", result.ErrorCode)
	}
}

func TestInstagramRehostFailureIsHardStop(t *testing.T) {
	script := &graphScript{statuses: []string{"FINISHED"}}
	server := httptest.NewServer(script.handler(t))
	defer server.Close()

	// Storage whose downloads always fail, regardless of host.
	storage := newTestStorage(brandedConfig(), &fakePutter{}, &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(strings.NewReader("")),
				Header:     make(http.Header),
			}, nil
		}),
	})

	s := newTestInstagram(server, storage)
	post := &models.SocialPost{ID: 13, Platform: models.PlatformInstagram, Content: "AI pic"}

	result := s.PublishPost(context.Background(), post, nil, instagramAccount(t),
		[]string{"https://oaidalleapiprodscus.blob.core.windows.net/private/img.png?se=2026"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != transfer.PublishErrDownloadFailed {
		t.Errorf("expected download_failed, got %s", result.ErrorCode)
	}
	if script.createCalls.Load() != 0 {
		t.Error("no container may be created when the rehost fails")
	}
}

func TestInstagramCancelledContext(t *testing.T) {
	script := &graphScript{statuses: []string{"IN_PROGRESS"}}
	server := httptest.NewServer(script.handler(t))
	defer server.Close()

	s := newTestInstagram(server, nil)
	s.pollInterval = time.Second
	s.pollTimeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	post := &models.SocialPost{ID: 14, Platform: models.PlatformInstagram, Content: "Hi"}
	result := s.PublishPost(ctx, post, nil, instagramAccount(t),
		[]string{"https://media.example.com/img.png"})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.ErrorCode != transfer.PublishErrPublishFailed {
		t.Errorf("expected publish_failed, got %s", result.ErrorCode)
	}
	if !strings.Contains(result.Error, "cancelled") {
		t.Errorf("error should mention cancellation, got %q", result.Error)
	}
}

func TestIsEphemeralImageURL(t *testing.T) {
	if !isEphemeralImageURL("https://oaidalleapiprodscus.blob.core.windows.net/private/x.png") {
		t.Error("known generative host should be ephemeral")
	}
	if isEphemeralImageURL("https://media.dailydishdash.com/uploads/x.png") {
		t.Error("brand media host should not be ephemeral")
	}
	if isEphemeralImageURL("::not a url::") {
		t.Error("unparseable URLs should not be ephemeral")
	}
}
