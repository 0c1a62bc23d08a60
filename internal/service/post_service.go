package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/marafield/brandops/internal/models"
	"github.com/marafield/brandops/internal/repository"
	"github.com/marafield/brandops/internal/transfer"
)

type PostService interface {
	CreatePosts(ctx context.Context, userID int64, pc *transfer.PostCreation) ([]int64, time.Duration, error)
	List(ctx context.Context, brandID int64) ([]*models.SocialPost, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.SocialPost, error)
	Remove(ctx context.Context, userID, postID int64) error
}

// postService creates posts from dashboard payloads. A payload targeting
// several platforms fans out into one post row per platform, so each
// platform publish succeeds or fails on its own.
type postService struct {
	db *sql.DB
	pr repository.PostRepository
	ma repository.MediaAssetRepository
	pm repository.PostMediaRepository
	br repository.BrandRepository
}

func NewPostService(
	db *sql.DB,
	pr repository.PostRepository,
	ma repository.MediaAssetRepository,
	pm repository.PostMediaRepository,
	br repository.BrandRepository) PostService {
	return &postService{
		db: db,
		pr: pr,
		ma: ma,
		pm: pm,
		br: br,
	}
}

func (s *postService) CreatePosts(ctx context.Context, userID int64, pc *transfer.PostCreation) ([]int64, time.Duration, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return nil, 0, err
	}
	if pc.Content == "" {
		err := errors.New("content cannot be empty")
		slog.Info(err.Error())
		return nil, 0, err
	}
	if len(pc.Platforms) == 0 {
		err := errors.New("no platforms selected")
		slog.Info(err.Error())
		return nil, 0, err
	}
	for _, platform := range pc.Platforms {
		if !models.IsKnownPlatform(platform) {
			err := fmt.Errorf("unknown platform: %s", platform)
			slog.Info(err.Error())
			return nil, 0, err
		}
	}

	brand, err := s.br.GetByID(ctx, pc.BrandID)
	if err != nil {
		return nil, 0, err
	}
	if brand == nil {
		err := errors.New("brand not found")
		slog.Info(err.Error())
		return nil, 0, err
	}

	// Empty scheduled time means publish now; the zero time marks that.
	var scheduledTime time.Time
	if pc.ScheduledTime != "" {
		scheduledTime, err = time.Parse("2006-01-02T15:04", pc.ScheduledTime)
		if err != nil {
			err = fmt.Errorf("invalid scheduled time format: %w", err)
			slog.Error(err.Error())
			return nil, 0, err
		}
	}

	for _, assetID := range pc.AssetIDs {
		asset, err := s.ma.GetByID(ctx, assetID)
		if err != nil {
			return nil, 0, err
		}
		if asset == nil {
			return nil, 0, fmt.Errorf("media asset %d does not exist", assetID)
		}
		if asset.BrandID != brand.ID {
			return nil, 0, fmt.Errorf("media asset %d does not belong to this brand", assetID)
		}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	postIDs := make([]int64, 0, len(pc.Platforms))
	for _, platform := range pc.Platforms {
		post := models.SocialPost{
			BrandID:       brand.ID,
			UserID:        userID,
			Platform:      platform,
			Content:       pc.Content,
			Hashtags:      pc.Hashtags,
			ScheduledTime: scheduledTime,
			Status:        models.PostStatusScheduled,
		}

		postID, err := s.pr.Create(ctx, tx, &post)
		if err != nil {
			return nil, 0, fmt.Errorf("error creating post: %w", err)
		}

		for i, assetID := range pc.AssetIDs {
			postMedia := models.PostMedia{
				PostID:       postID,
				AssetID:      assetID,
				DisplayOrder: i,
			}
			if err := s.pm.Create(ctx, tx, &postMedia); err != nil {
				return nil, 0, fmt.Errorf("error saving media file: %w", err)
			}
		}

		postIDs = append(postIDs, postID)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	delay := time.Until(scheduledTime)
	if delay < 0 {
		delay = 0
	}

	return postIDs, delay, nil
}

func (s *postService) List(ctx context.Context, brandID int64) ([]*models.SocialPost, error) {
	posts, err := s.pr.ListByBrandID(ctx, brandID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.SocialPost, error) {
	var err error

	if userID == 0 {
		err = errors.New("user is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	if postID == 0 {
		err = errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	isValid, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if !isValid {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info: %w", err)
	}

	return post, nil
}

func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	var err error

	if userID == 0 {
		err = errors.New("user is not valid")
		slog.Info(err.Error())
		return err
	}

	if postID == 0 {
		err = errors.New("post id is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("post doesn't exist")
		slog.Info(err.Error())
		return err
	}

	err = s.pr.Remove(ctx, postID)
	if err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}

	return nil
}
