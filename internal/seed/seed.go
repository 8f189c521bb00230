// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with generated accounts, posts, likes and
// comments. All generated accounts share the password "password123".
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Deletion order respects foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.Post{}, &models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n accounts with generated names and unique emails.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	// One hash shared across accounts keeps seeding fast.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}

	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts spread across the given users, with a realistic
// created_at spread over the last 30 days.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to post as")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		post := &models.Post{
			Text:      gofakeit.Sentence(8 + s.rand.Intn(12)),
			UserID:    author.ID,
			CreatedAt: time.Now().Add(-time.Duration(s.rand.Intn(30*24)) * time.Hour),
		}
		if s.rand.Intn(3) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		posts = append(posts, post)
	}

	log.Printf("Created %d posts", len(posts))
	return posts, nil
}

// SeedEngagement scatters likes and comments across the posts.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	likes := 0
	comments := 0
	for _, post := range posts {
		for _, user := range users {
			if s.rand.Intn(4) == 0 {
				like := &models.Like{UserID: user.ID, PostID: post.ID}
				if err := s.db.Create(like).Error; err != nil {
					return fmt.Errorf("create like: %w", err)
				}
				likes++
			}
			if s.rand.Intn(8) == 0 {
				comment := &models.Comment{
					Text:   gofakeit.Sentence(4 + s.rand.Intn(10)),
					UserID: user.ID,
					PostID: post.ID,
				}
				if err := s.db.Create(comment).Error; err != nil {
					return fmt.Errorf("create comment: %w", err)
				}
				comments++
			}
		}
	}

	log.Printf("Created %d likes, %d comments", likes, comments)
	return nil
}
