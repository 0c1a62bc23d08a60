package service

import (
	"context"
	"fmt"

	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/transfer"
)

type PublisherService interface {
	Publish(ctx context.Context, post *models.SocialPost, brand *models.Brand, mediaURLs []string) *transfer.PublishResult
}

// publisherService is the single entry point of the publishing pipeline.
// It resolves the brand account for the post's platform and routes to the
// matching adapter; it is the only place that knows the full platform set.
type publisherService struct {
	fb FacebookService
	ig InstagramService
}

func NewPublisherService(fb FacebookService, ig InstagramService) PublisherService {
	return &publisherService{
		fb: fb,
		ig: ig,
	}
}

func (s *publisherService) Publish(ctx context.Context, post *models.SocialPost, brand *models.Brand, mediaURLs []string) *transfer.PublishResult {
	if brand == nil {
		return transfer.PublishFailure(transfer.PublishErrAccountNotConfigured, "brand not found")
	}

	acc := brand.AccountFor(post.Platform)
	if acc == nil {
		return transfer.PublishFailure(transfer.PublishErrAccountNotConfigured,
			fmt.Sprintf("no %s account configured for brand %s", post.Platform, brand.Slug))
	}

	if !acc.IsActive {
		return transfer.PublishFailure(transfer.PublishErrAccountDisabled,
			fmt.Sprintf("%s account for brand %s is disabled", post.Platform, brand.Slug))
	}

	switch post.Platform {
	case models.PlatformFacebook:
		return s.fb.PublishPost(ctx, post, brand, acc, mediaURLs)
	case models.PlatformInstagram:
		return s.ig.PublishPost(ctx, post, brand, acc, mediaURLs)
	case models.PlatformTiktok, models.PlatformPinterest, models.PlatformTwitter:
		return transfer.PublishFailure(transfer.PublishErrNotImplemented,
			fmt.Sprintf("%s publishing is not yet implemented", post.Platform))
	default:
		return transfer.PublishFailure(transfer.PublishErrNotImplemented,
			fmt.Sprintf("unsupported platform: %s", post.Platform))
	}
}
