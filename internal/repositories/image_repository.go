package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/postline/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ImageRepository is the blob-storage collaborator: it accepts binary
// image data and returns a stable reference posts can carry.
type ImageRepository interface {
	SaveImage(ctx context.Context, image *models.Image) (string, error)
	GetImage(ctx context.Context, ref string) (*models.Image, error)
	DeleteImage(ctx context.Context, ref string) error
}

// MongoImageRepository implements ImageRepository for MongoDB
type MongoImageRepository struct {
	collection *mongo.Collection
}

// NewMongoImageRepository creates a new MongoImageRepository
func NewMongoImageRepository(db *mongo.Database) *MongoImageRepository {
	return &MongoImageRepository{collection: db.Collection("images")}
}

// SaveImage stores the blob and returns its reference
func (r *MongoImageRepository) SaveImage(ctx context.Context, image *models.Image) (string, error) {
	image.ID = primitive.NewObjectID()
	image.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, image); err != nil {
		return "", err
	}
	return image.Ref(), nil
}

// GetImage retrieves a stored blob by its reference
func (r *MongoImageRepository) GetImage(ctx context.Context, ref string) (*models.Image, error) {
	objID, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid image reference: %w", err)
	}

	var image models.Image
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("image not found")
		}
		return nil, err
	}
	return &image, nil
}

// DeleteImage removes a stored blob by its reference
func (r *MongoImageRepository) DeleteImage(ctx context.Context, ref string) error {
	objID, err := primitive.ObjectIDFromHex(ref)
	if err != nil {
		return fmt.Errorf("invalid image reference: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("image not found")
	}
	return nil
}
