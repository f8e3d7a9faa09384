package repositories

import (
	"github.com/postline/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
// All listing methods return posts newest first.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetAllPosts(offset, limit int) ([]models.Post, error)
	CountAllPosts() (int64, error)
	GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error)
	CountPostsByAuthorID(authorID uint) (int64, error)
	GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error)
	CountPostsByGroupID(groupID uint) (int64, error)
	GetFollowingPosts(userID uint, offset, limit int) ([]models.Post, error)
	CountFollowingPosts(userID uint) (int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetAllPosts(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountAllPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) GetPostsByAuthorID(authorID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByAuthorID(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) GetPostsByGroupID(groupID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("group_id = ?", groupID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPostsByGroupID(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("group_id = ?", groupID).Count(&count).Error
	return count, err
}

// GetFollowingPosts returns posts by every author the given user follows
func (r *PostgresPostRepository) GetFollowingPosts(userID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Preload("Author").Preload("Group").
		Where("author_id IN (?)",
			r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountFollowingPosts(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("author_id IN (?)",
			r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID),
		).
		Count(&count).Error
	return count, err
}

// UpdatePost persists text, group and image changes. The creation
// timestamp and author are never touched.
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Model(post).Select("Text", "GroupID", "ImageRef").Updates(post).Error
}

// DeletePost removes a post together with its comments
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
