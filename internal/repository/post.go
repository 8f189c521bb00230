package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	UpdateText(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	// ToggleLike flips the caller's membership in the post's likes set as a
	// single atomic storage operation: insert-on-conflict-do-nothing, and
	// when nothing was inserted, delete the existing row. Two concurrent
	// toggles by the same caller can never produce a duplicate entry.
	ToggleLike(ctx context.Context, userID, postID uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidateFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewStorageError(err)
	}
	if err := r.fillLikes(ctx, []*models.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewStorageError(err)
	}
	if err := r.fillLikes(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// applyPostDetails adds count subqueries and the read-side joins: the owner's
// profile and the comment sequence in append order with each author resolved.
func (r *postRepository) applyPostDetails(db *gorm.DB) *gorm.DB {
	return db.
		Select("posts.*, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count").
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User")
}

// fillLikes resolves the likes membership set for each post in one query.
func (r *postRepository) fillLikes(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return models.NewStorageError(err)
	}

	byPost := make(map[uint][]uint, len(posts))
	for _, l := range likes {
		byPost[l.PostID] = append(byPost[l.PostID], l.UserID)
	}
	for _, p := range posts {
		p.Likes = byPost[p.ID]
		if p.Likes == nil {
			p.Likes = []uint{}
		}
	}
	return nil
}

func (r *postRepository) UpdateText(ctx context.Context, post *models.Post) error {
	// Only the text column is mutable; the owner reference never changes.
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", post.ID).
		Update("text", post.Text).Error; err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	// Comments and likes go with the post as a unit.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&models.Like{UserID: userID, PostID: postID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Membership already present: this toggle is an un-like.
			return tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Like{}).Error
		}
		return nil
	})
	if err != nil {
		return models.NewStorageError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
