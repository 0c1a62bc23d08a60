package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/service"
)

func (j *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.PublishPost(ctx, payload.PostID)
}

// PublishPost pushes one post through the dispatcher and records the
// outcome. Posts already published (or deleted) are skipped, so retries
// never double-post.
func (j *Queue) PublishPost(ctx context.Context, postID int64) error {
	post, err := j.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		slog.Info(fmt.Sprintf("post %d no longer exists, skipping", postID))
		return nil
	}
	if post.Status == models.PostStatusPublished {
		slog.Info(fmt.Sprintf("post %d is already published, skipping", postID))
		return nil
	}

	brand, err := j.br.GetByID(ctx, post.BrandID)
	if err != nil {
		return err
	}
	if brand != nil {
		accounts, err := j.ac.ListByBrandID(ctx, brand.ID)
		if err != nil {
			return err
		}
		brand.Accounts = accounts
	}

	mediaURLs, err := j.mediaURLs(ctx, postID)
	if err != nil {
		return err
	}

	result := j.pub.Publish(ctx, post, brand, mediaURLs)

	history := models.PostingHistory{
		BrandID:  post.BrandID,
		PostID:   post.ID,
		Platform: post.Platform,
	}

	if result.Success {
		history.PlatformPostID = result.PlatformPostID
	} else {
		history.ErrorCode = result.ErrorCode
		history.ErrorMessage = result.Error
		slog.Info(fmt.Sprintf("publish failed for post %d on %s: [%s] %s",
			post.ID, post.Platform, result.ErrorCode, result.Error))
	}

	if _, err := j.ph.Create(ctx, &history); err != nil {
		slog.Info(fmt.Sprintf("error saving posting history for post %d: %v", post.ID, err))
	}

	// A success while the scheduled time is still ahead is a deferred
	// acceptance, not a live publish. The post stays scheduled and the
	// sweeper re-submits it when due.
	if result.Success && service.IsFutureSchedule(post.ScheduledTime, time.Now()) {
		return nil
	}

	status := models.PostStatusPublished
	if !result.Success {
		status = models.PostStatusFailed
	}
	if err := j.pr.UpdateStatus(ctx, status, post.ID); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if !result.Success {
		// Non-retryable: the outcome is recorded, operators resubmit by hand.
		return fmt.Errorf("publish failed: %s: %w", result.ErrorCode, asynq.SkipRetry)
	}

	return nil
}

func (j *Queue) mediaURLs(ctx context.Context, postID int64) ([]string, error) {
	postMedia, err := j.pm.ListByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, pm := range postMedia {
		asset, err := j.ma.GetByID(ctx, pm.AssetID)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, errors.New("media asset referenced by post does not exist")
		}
		urls = append(urls, asset.FileURL)
	}

	return urls, nil
}
