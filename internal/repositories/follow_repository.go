package repositories

import (
	"github.com/postline/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	GetOrCreateFollow(userID, authorID uint) error
	DeleteFollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
	GetFollowingIDs(userID uint) ([]uint, error)
	GetFollowersCount(authorID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// GetOrCreateFollow creates the edge unless it already exists. Calling it
// twice for the same pair leaves exactly one row; the unique index on
// (user_id, author_id) backs this up under concurrent submission.
func (r *PostgresFollowRepository) GetOrCreateFollow(userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&follow).Error
}

// DeleteFollow removes the edge, reporting gorm.ErrRecordNotFound when no
// such subscription exists.
func (r *PostgresFollowRepository) DeleteFollow(userID, authorID uint) error {
	res := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Pluck("author_id", &ids).Error
	return ids, err
}

func (r *PostgresFollowRepository) GetFollowersCount(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
