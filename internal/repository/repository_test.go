package repository

import (
	"context"
	"errors"
	"testing"

	"ripple/internal/cache"
	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	// A pooled second connection to :memory: would see an empty schema.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	require.NoError(t, database.Migrate(db), "migrate sqlite")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hashed"}
	require.NoError(t, db.Create(user).Error, "create user")
	return user
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Name: "Other Ada", Email: "ada@example.com", Password: "hash"}
	err := repo.Create(ctx, second)
	require.Error(t, err, "duplicate email must conflict")
	assert.Equal(t, models.CodeConflict, appErrCode(t, err))
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user, "a miss is nil, not an error")
}

func TestUserRepository_DeleteWithPostsCascades(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	post := &models.Post{Text: "owner's post", UserID: owner.ID}
	require.NoError(t, db.Create(post).Error)
	otherPost := &models.Post{Text: "other's post", UserID: other.ID}
	require.NoError(t, db.Create(otherPost).Error)

	// Engagement in both directions: on the owner's post and by the owner
	// on someone else's post.
	for _, rec := range []any{
		&models.Like{UserID: other.ID, PostID: post.ID},
		&models.Comment{Text: "nice", UserID: other.ID, PostID: post.ID},
		&models.Like{UserID: owner.ID, PostID: otherPost.ID},
		&models.Comment{Text: "thanks", UserID: owner.ID, PostID: otherPost.ID},
	} {
		require.NoError(t, db.Create(rec).Error, "create engagement")
	}

	require.NoError(t, userRepo.DeleteWithPosts(ctx, owner.ID))

	assert.Zero(t, countRows(t, db, &models.User{}, "id = ?", owner.ID),
		"user row should be gone")
	assert.Zero(t, countRows(t, db, &models.Post{}, "user_id = ?", owner.ID),
		"owner's posts should be gone")
	assert.Zero(t, countRows(t, db, &models.Like{}, "user_id = ? OR post_id = ?", owner.ID, post.ID),
		"likes referencing the account should be gone")
	assert.Zero(t, countRows(t, db, &models.Comment{}, "user_id = ? OR post_id = ?", owner.ID, post.ID),
		"comments referencing the account should be gone")

	// Unrelated data survives.
	assert.EqualValues(t, 1, countRows(t, db, &models.Post{}, "id = ?", otherPost.ID),
		"other user's post should survive")
}

// Not parallel: swaps the package-level cache client.
func TestUserRepository_DeleteWithPostsInvalidatesCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	prev := cache.GetClient()
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(prev) })

	db := setupRepoTestDB(t)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	other := createTestUser(t, db, "Other", "other@example.com")

	post := &models.Post{Text: "doomed", UserID: owner.ID}
	require.NoError(t, db.Create(post).Error)
	likedPost := &models.Post{Text: "liked by owner", UserID: other.ID}
	require.NoError(t, db.Create(likedPost).Error)
	require.NoError(t, db.Create(&models.Like{UserID: owner.ID, PostID: likedPost.ID}).Error)

	// Warm the feed and both post documents.
	require.NoError(t, cache.SetJSON(ctx, cache.FeedKey(), []uint{post.ID, likedPost.ID}, cache.FeedTTL))
	require.NoError(t, cache.SetJSON(ctx, cache.PostKey(post.ID), post, cache.PostTTL))
	require.NoError(t, cache.SetJSON(ctx, cache.PostKey(likedPost.ID), likedPost, cache.PostTTL))

	require.NoError(t, userRepo.DeleteWithPosts(ctx, owner.ID))

	assert.False(t, mr.Exists(cache.FeedKey()),
		"feed cache must be dropped with the account")
	assert.False(t, mr.Exists(cache.PostKey(post.ID)),
		"deleted post's cache entry must be dropped")
	assert.False(t, mr.Exists(cache.PostKey(likedPost.ID)),
		"posts that lose the account's engagement must be dropped too")
}

func TestPostRepository_GetByIDEnrichment(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post := &models.Post{Text: "hello", UserID: owner.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	require.NoError(t, db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)
	for _, text := range []string{"first", "second"} {
		c := &models.Comment{Text: text, UserID: fan.ID, PostID: post.ID}
		require.NoError(t, db.Create(c).Error)
	}

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)

	assert.Equal(t, "Owner", got.User.Name, "owner profile resolved")
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, []uint{fan.ID}, got.Likes)
	assert.Equal(t, 2, got.CommentsCount)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Text, "comments in append order")
	assert.Equal(t, "second", got.Comments[1].Text)
	assert.Equal(t, "Fan", got.Comments[0].User.Name, "comment author resolved")
}

func TestPostRepository_GetByIDMissing(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	postRepo := NewPostRepository(db)

	_, err := postRepo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, appErrCode(t, err))
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")

	for _, text := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, postRepo.Create(ctx, &models.Post{Text: text, UserID: owner.ID}))
	}
	// Force distinct timestamps; sqlite's clock resolution can collapse them.
	db.Model(&models.Post{}).Where("text = ?", "oldest").
		Update("created_at", gorm.Expr("datetime('now', '-2 hours')"))
	db.Model(&models.Post{}).Where("text = ?", "middle").
		Update("created_at", gorm.Expr("datetime('now', '-1 hours')"))

	posts, err := postRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Text)
	assert.Equal(t, "oldest", posts[2].Text)
	assert.NotNil(t, posts[0].Likes, "likes set should be empty, not absent")
}

func TestPostRepository_UpdateTextOnly(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	post := &models.Post{Text: "before", ImageURL: "https://img.example/1.png", UserID: owner.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	post.Text = "after"
	require.NoError(t, postRepo.UpdateText(ctx, post))

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Text)
	assert.Equal(t, "https://img.example/1.png", got.ImageURL, "image url untouched")
	assert.Equal(t, owner.ID, got.UserID, "owner must never change")
}

func TestPostRepository_DeleteRemovesEngagement(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post := &models.Post{Text: "doomed", UserID: owner.ID}
	require.NoError(t, postRepo.Create(ctx, post))
	require.NoError(t, db.Create(&models.Like{UserID: fan.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Text: "hi", UserID: fan.ID, PostID: post.ID}).Error)

	require.NoError(t, postRepo.Delete(ctx, post.ID))

	assert.Zero(t, countRows(t, db, &models.Post{}, "id = ?", post.ID),
		"post should be gone")
	assert.Zero(t, countRows(t, db, &models.Like{}, "post_id = ?", post.ID),
		"likes should be gone with the post")
	assert.Zero(t, countRows(t, db, &models.Comment{}, "post_id = ?", post.ID),
		"comments should be gone with the post")
}

func TestPostRepository_ToggleLikePair(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	fan := createTestUser(t, db, "Fan", "fan@example.com")

	post := &models.Post{Text: "likable", UserID: owner.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	require.NoError(t, postRepo.ToggleLike(ctx, fan.ID, post.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", fan.ID, post.ID),
		"membership present after first toggle")

	require.NoError(t, postRepo.ToggleLike(ctx, fan.ID, post.ID))
	assert.Zero(t, countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", fan.ID, post.ID),
		"membership removed after second toggle")

	// A second account's like is independent membership.
	require.NoError(t, postRepo.ToggleLike(ctx, owner.ID, post.ID))
	require.NoError(t, postRepo.ToggleLike(ctx, fan.ID, post.ID))
	assert.EqualValues(t, 2, countRows(t, db, &models.Like{}, "post_id = ?", post.ID))
}

func TestCommentRepository_AppendOrder(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	commentRepo := NewCommentRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	post := &models.Post{Text: "discuss", UserID: owner.ID}
	require.NoError(t, db.Create(post).Error)

	for _, text := range []string{"one", "two", "three"} {
		c := &models.Comment{Text: text, UserID: owner.ID, PostID: post.ID}
		require.NoError(t, commentRepo.Create(ctx, c))
	}

	comments, err := commentRepo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	for i, want := range []string{"one", "two", "three"} {
		assert.Equal(t, want, comments[i].Text, "comment %d", i)
	}
}
