package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rajput-vishal01/videovault/internal/models"
)

var ErrVideoNotFound = errors.New("video not found")

type VideoRepository interface {
	Insert(ctx context.Context, v *models.Video) error
	ListAll(ctx context.Context) ([]models.Video, error)
	GetByID(ctx context.Context, id string) (*models.Video, error)
}

type mongoVideoRepo struct {
	col *mongo.Collection
}

func NewMongoVideoRepo(db *mongo.Database, collection string) VideoRepository {
	col := db.Collection(collection)
	// feed reads newest-first
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return &mongoVideoRepo{col: col}
}

func (r *mongoVideoRepo) Insert(ctx context.Context, v *models.Video) error {
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, v)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		v.ID = oid
	}
	return nil
}

func (r *mongoVideoRepo) ListAll(ctx context.Context) ([]models.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []models.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *mongoVideoRepo) GetByID(ctx context.Context, id string) (*models.Video, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrVideoNotFound
	}
	var v models.Video
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
