package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/postline/backend/internal/cache"
	"github.com/postline/backend/internal/models"
	"github.com/postline/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires handlers against an isolated in-memory database
type testEnv struct {
	db        *gorm.DB
	e         *echo.Echo
	pageCache *cache.PageCache
	feed      *FeedHandler
	posts     *PostHandler
	comments  *CommentHandler
	follows   *FollowHandler
	groups    *GroupHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	pageCache := cache.NewPageCache(20 * time.Second)

	return &testEnv{
		db:        db,
		e:         echo.New(),
		pageCache: pageCache,
		feed:      NewFeedHandler(postRepo, userRepo, groupRepo, followRepo, pageCache),
		posts:     NewPostHandler(postRepo, groupRepo, commentRepo),
		comments:  NewCommentHandler(commentRepo, postRepo),
		follows:   NewFollowHandler(followRepo, userRepo),
		groups:    NewGroupHandler(groupRepo),
	}
}

func (env *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		DisplayName: username,
		Email:       fmt.Sprintf("%s@example.com", username),
		Password:    "testpassword",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createPost(t *testing.T, author *models.User, text string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{Text: text, AuthorID: author.ID, CreatedAt: createdAt}
	require.NoError(t, env.db.Create(post).Error)
	return post
}

// newContext builds an Echo context for a direct handler invocation.
// userID 0 leaves the request anonymous.
func (env *testEnv) newContext(method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if userID > 0 {
		c.Set("userID", userID)
	}
	return c, rec
}

// httpCode extracts the status code from a handler error
func httpCode(t *testing.T, err error) int {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %v", err)
	return he.Code
}
