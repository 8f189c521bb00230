package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

// FeedService is the feed's mutation core: create, owner-only edit and delete,
// like toggling, and comment appending.
type FeedService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

type CreatePostInput struct {
	UserID   uint
	Text     string
	ImageURL string
}

type EditPostInput struct {
	UserID uint
	PostID uint
	Text   string
}

type AddCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost persists a new post owned by the caller with an empty likes set
// and an empty comment sequence.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Text:     in.Text,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// ListFeed returns all posts newest first, enriched with owner and comment
// author names. The public feed is served cache-aside.
func (s *FeedService) ListFeed(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.FeedKey(), &posts, cache.FeedTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.postRepo.List(ctx)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// GetPost returns a single enriched post, served cache-aside. Write paths
// read through the repository directly so they always see fresh state.
func (s *FeedService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post *models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		var fetchErr error
		post, fetchErr = s.postRepo.GetByID(ctx, id)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost replaces the post text. Owner-only.
func (s *FeedService) EditPost(ctx context.Context, in EditPostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}
	if err := validation.ValidatePostText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Text = in.Text
	if err := s.postRepo.UpdateText(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeletePost removes the post with its comments and likes as a unit. Owner-only.
func (s *FeedService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's membership in the post's likes set. Any
// authenticated caller may like any post, including their own.
func (s *FeedService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.ToggleLike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

// AddComment appends a comment authored by the caller to the post's sequence.
func (s *FeedService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	if err := validation.ValidateCommentText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   in.Text,
		UserID: in.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}
