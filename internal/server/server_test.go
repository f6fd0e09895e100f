package server

import (
	"testing"

	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/middleware"
	"murmur/internal/repository"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestServer builds a Server over the given DB without metrics or Redis.
func newTestServer(t *testing.T, db *gorm.DB) *Server {
	t.Helper()
	cfg := &config.Config{
		JWTSecret: "test-secret",
		Port:      "0",
		Env:       "test",
	}
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	followRepo := repository.NewFollowRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		groupRepo:   groupRepo,
		followRepo:  followRepo,
	}
	s.postService = service.NewPostService(postRepo, groupRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)
	s.groupService = service.NewGroupService(groupRepo)
	s.followService = service.NewFollowService(followRepo, userRepo)
	return s
}

// newTestApp wires the server's routes behind a stub identity, bypassing JWT
// parsing. userID 0 leaves the request anonymous.
func newTestApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	if userID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userID", userID)
			return c.Next()
		})
	}

	api := app.Group("/api")
	api.Get("/health", s.HealthCheck)

	api.Post("/auth/signup", s.Signup)
	api.Post("/auth/login", s.Login)

	api.Get("/groups", s.GetGroups)
	api.Get("/groups/:id", s.GetGroup)
	api.Post("/groups", s.CreateGroup)
	api.Put("/groups/:id", s.UpdateGroup)
	api.Delete("/groups/:id", s.DeleteGroup)

	api.Get("/posts", s.GetPosts)
	api.Get("/posts/:id", s.GetPost)
	api.Post("/posts", s.CreatePost)
	api.Put("/posts/:id", s.UpdatePost)
	api.Delete("/posts/:id", s.DeletePost)

	api.Get("/posts/:id/comments", s.GetComments)
	api.Get("/posts/:id/comments/:commentId", s.GetComment)
	api.Post("/posts/:id/comments", s.CreateComment)
	api.Put("/posts/:id/comments/:commentId", s.UpdateComment)
	api.Delete("/posts/:id/comments/:commentId", s.DeleteComment)

	api.Get("/users/:username", s.GetUserProfile)
	api.Put("/users/me", s.UpdateAccount)
	api.Delete("/users/me", s.DeleteAccount)

	api.Get("/follow/following", s.GetFollowing)
	api.Post("/follow/following/:username", s.FollowUser)
	api.Delete("/follow/following/:username", s.UnfollowUser)
	api.Get("/follow/followers", s.GetFollowers)

	return app
}
