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

// OutfitRepository handles outfit documents in MongoDB.
type OutfitRepository struct {
	collection *mongo.Collection
}

// NewOutfitRepository creates a new outfit repository over the given database.
func NewOutfitRepository(db *mongo.Database) *OutfitRepository {
	return &OutfitRepository{collection: db.Collection("outfits")}
}

// EnsureOutfitIndexes creates the indexes the outfit collection relies on.
func EnsureOutfitIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("outfits").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "dress_components.dress_id", Value: 1}}},
	})
	return err
}

// Create inserts an outfit document and fills in its generated id and timestamps.
func (r *OutfitRepository) Create(ctx context.Context, outfit *models.Outfit) error {
	now := time.Now().UTC()
	outfit.CreatedAt = now
	outfit.UpdatedAt = now
	if outfit.DressComponents == nil {
		outfit.DressComponents = []models.DressComponent{}
	}

	res, err := r.collection.InsertOne(ctx, outfit)
	if err != nil {
		return apperr.Storage("failed to insert outfit", err)
	}
	outfit.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID retrieves one outfit by its hex id.
func (r *OutfitRepository) FindByID(ctx context.Context, id string) (*models.Outfit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("OUTFIT_NOT_FOUND", "outfit not found")
	}

	var outfit models.Outfit
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&outfit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("OUTFIT_NOT_FOUND", "outfit not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to fetch outfit", err)
	}
	return &outfit, nil
}

// FindByUserID retrieves all outfits owned by a user, newest first.
func (r *OutfitRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Outfit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, apperr.Storage("failed to list outfits", err)
	}
	defer cursor.Close(ctx)

	var outfits []*models.Outfit
	if err := cursor.All(ctx, &outfits); err != nil {
		return nil, apperr.Storage("failed to decode outfits", err)
	}
	return outfits, nil
}

// FindByIDs retrieves the outfits whose hex ids appear in ids, skipping
// invalid or missing ids so stale links never fail a read.
func (r *OutfitRepository) FindByIDs(ctx context.Context, ids []string) ([]*models.Outfit, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*models.Outfit{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperr.Storage("failed to fetch outfits", err)
	}
	defer cursor.Close(ctx)

	var outfits []*models.Outfit
	if err := cursor.All(ctx, &outfits); err != nil {
		return nil, apperr.Storage("failed to decode outfits", err)
	}
	return outfits, nil
}

// FindByDressComponentID retrieves the outfits that reference a dress.
func (r *OutfitRepository) FindByDressComponentID(ctx context.Context, dressID string) ([]*models.Outfit, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"dress_components.dress_id": dressID})
	if err != nil {
		return nil, apperr.Storage("failed to fetch outfits by dress", err)
	}
	defer cursor.Close(ctx)

	var outfits []*models.Outfit
	if err := cursor.All(ctx, &outfits); err != nil {
		return nil, apperr.Storage("failed to decode outfits", err)
	}
	return outfits, nil
}

// Update applies a partial update and returns the updated document.
func (r *OutfitRepository) Update(ctx context.Context, id string, fields bson.M) (*models.Outfit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("OUTFIT_NOT_FOUND", "outfit not found")
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var outfit models.Outfit
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&outfit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("OUTFIT_NOT_FOUND", "outfit not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to update outfit", err)
	}
	return &outfit, nil
}

// Delete removes an outfit document and returns what was deleted.
func (r *OutfitRepository) Delete(ctx context.Context, id string) (*models.Outfit, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("OUTFIT_NOT_FOUND", "outfit not found")
	}

	var outfit models.Outfit
	err = r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&outfit)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("OUTFIT_NOT_FOUND", "outfit not found")
	}
	if err != nil {
		return nil, apperr.Storage("failed to delete outfit", err)
	}
	return &outfit, nil
}
