// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Order follows foreign key dependencies.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE follows, comments, posts, groups, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed populates the database with test data per the given options.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users, %d groups, %d posts...", opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.seedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	groups, err := s.seedGroups(opts.NumGroups)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("%d groups created", len(groups))

	posts, err := s.seedPosts(users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	commentCount, err := s.seedComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d comments created", commentCount)

	followCount, err := s.SeedFollowMesh(users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("%d follow edges created", followCount)

	log.Println("Database seeding completed")
	return nil
}

func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// A few fixed accounts so the demo login is predictable
	if count >= 2 {
		for _, name := range []string{"alice", "bob"} {
			user, err := s.factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
			})
			if err != nil {
				return nil, err
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedGroups(count int) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, count)
	for i := 0; i < count; i++ {
		group, err := s.factory.CreateGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (s *Seeder) seedPosts(users []*models.User, groups []*models.Group, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]

		// roughly 60% of posts land in a group
		var group *models.Group
		if len(groups) > 0 && s.rng.Float32() < 0.6 {
			group = groups[s.rng.Intn(len(groups))]
		}

		post, err := s.factory.CreatePost(author, group)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedComments(users []*models.User, posts []*models.Post) (int, error) {
	total := 0
	for _, post := range posts {
		for n := s.rng.Intn(4); n > 0; n-- {
			author := users[s.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(author, post); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// SeedFollowMesh wires a random follow graph: each user follows a handful of
// others, never themselves, with duplicate edges skipped.
func (s *Seeder) SeedFollowMesh(users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	total := 0
	for _, follower := range users {
		seen := map[uint]bool{follower.ID: true}
		for n := 1 + s.rng.Intn(5); n > 0; n-- {
			target := users[s.rng.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true

			if err := s.factory.CreateFollow(follower, target); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}
