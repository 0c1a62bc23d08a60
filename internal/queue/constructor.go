package queue

import (
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/service"
)

type Queue struct {
	pr  repository.PostRepository
	br  repository.BrandRepository
	ac  repository.SocialAccountRepository
	ma  repository.MediaAssetRepository
	pm  repository.PostMediaRepository
	ph  repository.PostingHistoryRepository
	pub service.PublisherService
}

func NewQueue(
	pr repository.PostRepository,
	br repository.BrandRepository,
	ac repository.SocialAccountRepository,
	ma repository.MediaAssetRepository,
	pm repository.PostMediaRepository,
	ph repository.PostingHistoryRepository,
	pub service.PublisherService) *Queue {
	return &Queue{
		pr:  pr,
		br:  br,
		ac:  ac,
		ma:  ma,
		pm:  pm,
		ph:  ph,
		pub: pub,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
