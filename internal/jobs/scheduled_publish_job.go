package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/queue"
	"github.com/marafield/brandops/internal/repository"
)

// ScheduledPublishJob sweeps for posts whose scheduled time has passed but
// are still marked scheduled, and re-submits them to the publish queue.
// This catches deferred posts whose original delayed task was lost, and
// posts accepted with a deferred acknowledgement.
type ScheduledPublishJob struct {
	pr          repository.PostRepository
	asynqClient *asynq.Client
}

func NewScheduledPublishJob(pr repository.PostRepository, asynqClient *asynq.Client) *ScheduledPublishJob {
	return &ScheduledPublishJob{
		pr:          pr,
		asynqClient: asynqClient,
	}
}

func (j *ScheduledPublishJob) SweepDuePosts() {
	ctx := context.Background()

	posts, err := j.pr.ListDue(ctx, models.PostStatusScheduled, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, post := range posts {
		err := queue.EnqueuePost(j.asynqClient, queue.PublishPostPayload{PostID: post.ID}, 0)
		if err != nil {
			slog.Info(fmt.Sprintf("error re-submitting post %d: %v", post.ID, err))
		}
	}
}
