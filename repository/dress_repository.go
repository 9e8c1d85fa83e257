package repository

import (
	"context"
	"errors"
	"time"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DressRepository handles dress documents in MongoDB.
type DressRepository struct {
	collection *mongo.Collection
}

// NewDressRepository creates a new dress repository over the given database.
func NewDressRepository(db *mongo.Database) *DressRepository {
	return &DressRepository{collection: db.Collection("dresses")}
}

// EnsureDressIndexes creates the indexes the dress collection relies on.
func EnsureDressIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("dresses").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "dress_type_id", Value: 1}}},
		{Keys: bson.D{{Key: "style_tags", Value: 1}}},
	})
	return err
}

// Create inserts a dress document and fills in its generated id and timestamps.
func (r *DressRepository) Create(ctx context.Context, dress *models.Dress) error {
	now := time.Now().UTC()
	dress.CreatedAt = now
	dress.UpdatedAt = now
	if dress.StyleTags == nil {
		dress.StyleTags = []string{}
	}
	if dress.MediaAssets.ImageURLs == nil {
		dress.MediaAssets.ImageURLs = []string{}
	}

	res, err := r.collection.InsertOne(ctx, dress)
	if err != nil {
		return apperr.Storage("failed to insert dress", err)
	}
	dress.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID retrieves one dress by its hex id.
func (r *DressRepository) FindByID(ctx context.Context, id string) (*models.Dress, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}

	var dress models.Dress
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&dress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to fetch dress", err)
	}
	return &dress, nil
}

// FindByUserID retrieves all dresses owned by a user, newest first.
func (r *DressRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Dress, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to list dresses", err)
	}
	defer cursor.Close(ctx)

	var dresses []*models.Dress
	if err := cursor.All(ctx, &dresses); err != nil {
		return nil, apperr.Storage("failed to decode dresses", err)
	}
	return dresses, nil
}

// FindByIDs retrieves the dresses whose hex ids appear in ids. Ids that
// are not valid object ids or that match no document are skipped, so a
// stale link never fails the whole read.
func (r *DressRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Dress, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*models.Dress{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperr.Storage("failed to fetch dresses", err)
	}
	defer cursor.Close(ctx)

	var dresses []*models.Dress
	if err := cursor.All(ctx, &dresses); err != nil {
		return nil, apperr.Storage("failed to decode dresses", err)
	}
	return dresses, nil
}

// Update applies a partial update and returns the updated document.
func (r *DressRepository) Update(ctx context.Context, id string, fields bson.M) (*models.Dress, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var dress models.Dress
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&dress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to update dress", err)
	}
	return &dress, nil
}

// Delete removes a dress document and returns what was deleted.
func (r *DressRepository) Delete(ctx context.Context, id string) (*models.Dress, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}

	var dress models.Dress
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&dress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("DRESS_NOT_FOUND", "dress not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to delete dress", err)
	}
	return &dress, nil
}
