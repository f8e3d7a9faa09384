package repositories

import (
	"testing"

	"github.com/postline/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetOrCreateFollowIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")

	require.NoError(t, repo.GetOrCreateFollow(reader.ID, author.ID))
	require.NoError(t, repo.GetOrCreateFollow(reader.ID, author.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", reader.ID, author.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "Double follow must leave exactly one edge")
}

func TestDeleteFollowMissingEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")
	other := createTestUser(t, db, "other")

	require.NoError(t, repo.GetOrCreateFollow(reader.ID, author.ID))

	err := repo.DeleteFollow(reader.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The existing edge must be untouched
	following, err := repo.IsFollowing(reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestDeleteFollowRemovesEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")

	require.NoError(t, repo.GetOrCreateFollow(reader.ID, author.ID))
	require.NoError(t, repo.DeleteFollow(reader.ID, author.ID))

	following, err := repo.IsFollowing(reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowCountsAndIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)

	reader := createTestUser(t, db, "reader")
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")

	require.NoError(t, repo.GetOrCreateFollow(reader.ID, first.ID))
	require.NoError(t, repo.GetOrCreateFollow(reader.ID, second.ID))

	ids, err := repo.GetFollowingIDs(reader.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{first.ID, second.ID}, ids)

	followingCount, err := repo.GetFollowingCount(reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followingCount)

	followersCount, err := repo.GetFollowersCount(first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followersCount)
}
