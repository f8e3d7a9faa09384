package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/postline/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an isolated in-memory database and migrates the schema
func setupTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:    username,
		DisplayName: username,
		Email:       fmt.Sprintf("%s@example.com", username),
		Password:    "testpassword",
	}
	require.NoError(t, db.Create(user).Error, "Failed to create test user %s", username)
	require.True(t, user.ID > 0)
	return user
}

func createTestGroup(t *testing.T, db *gorm.DB, slug string) *models.Group {
	t.Helper()

	group := &models.Group{
		Slug:        slug,
		Title:       slug + " group",
		Description: "test group",
	}
	require.NoError(t, db.Create(group).Error, "Failed to create test group %s", slug)
	return group
}

// createTestPost inserts a post with an explicit timestamp so ordering
// assertions do not depend on wall-clock resolution.
func createTestPost(t *testing.T, db *gorm.DB, author *models.User, text string, createdAt time.Time) *models.Post {
	t.Helper()

	post := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(post).Error, "Failed to create test post")
	return post
}
