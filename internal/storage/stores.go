// Package storage persists the store catalog in MongoDB.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chandrasingh0914/mersiv-backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("store not found")
	ErrModelNotFound = errors.New("model not found in store")
	ErrDuplicateName = errors.New("store name already exists")
	ErrInvalidID     = errors.New("invalid store id")
)

const listLimit = 100

// StoreRepository is the catalog access layer over the stores collection.
type StoreRepository struct {
	col *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{col: db.Collection("stores")}
}

// List returns basic info for every store, capped at listLimit documents.
func (r *StoreRepository) List(ctx context.Context) ([]domain.StoreListItem, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "imageUrl": 1, "domain": 1}).
		SetLimit(listLimit)
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]domain.StoreListItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode stores: %w", err)
	}
	return items, nil
}

// Get returns one store with all its models.
func (r *StoreRepository) Get(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	var store domain.Store
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&store); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &store, nil
}

// Create inserts a new store. Store names are unique across the catalog.
func (r *StoreRepository) Create(ctx context.Context, in domain.StoreCreate) (*domain.Store, error) {
	err := r.col.FindOne(ctx, bson.M{"name": in.Name}).Err()
	if err == nil {
		return nil, ErrDuplicateName
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check store name: %w", err)
	}

	now := time.Now().UTC()
	models := in.Models
	if models == nil {
		models = []domain.Model3D{}
	}
	store := domain.Store{
		Name:          in.Name,
		ImageURL:      in.ImageURL,
		Domain:        in.Domain,
		VideoURL:      in.VideoURL,
		ClickableLink: in.ClickableLink,
		Models:        models,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	res, err := r.col.InsertOne(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	store.ID = res.InsertedID.(primitive.ObjectID)
	log.Info().Str("module", "storage").Str("store", store.ID.Hex()).Str("name", store.Name).Msg("store created")
	return &store, nil
}

// Update applies the non-nil fields of in and returns the updated store.
func (r *StoreRepository) Update(ctx context.Context, id string, in domain.StoreUpdate) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.ImageURL != nil {
		set["imageUrl"] = *in.ImageURL
	}
	if in.Domain != nil {
		set["domain"] = *in.Domain
	}
	if in.VideoURL != nil {
		set["videoUrl"] = *in.VideoURL
	}
	if in.ClickableLink != nil {
		set["clickableLink"] = *in.ClickableLink
	}
	if in.Models != nil {
		set["models"] = *in.Models
	}

	var store domain.Store
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&store)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update store: %w", err)
	}
	return &store, nil
}

// UpdateModelPosition moves one model inside a store and returns the updated
// store. This is the persisted counterpart of the live position relay.
func (r *StoreRepository) UpdateModelPosition(ctx context.Context, id string, upd domain.ModelPositionUpdate) (*domain.Store, error) {
	store, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range store.Models {
		if store.Models[i].ID == upd.ModelID {
			store.Models[i].Position = upd.Position
			found = true
			break
		}
	}
	if !found {
		return nil, ErrModelNotFound
	}

	store.UpdatedAt = time.Now().UTC()
	_, err = r.col.UpdateOne(ctx, bson.M{"_id": store.ID}, bson.M{"$set": bson.M{
		"models":    store.Models,
		"updatedAt": store.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("update model position: %w", err)
	}
	return store, nil
}

// Delete removes a store.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	log.Info().Str("module", "storage").Str("store", id).Msg("store deleted")
	return nil
}

// WidgetConfigByDomain resolves the embeddable-widget settings for the store
// registered under the given host-page domain.
func (r *StoreRepository) WidgetConfigByDomain(ctx context.Context, pageDomain string) (*domain.WidgetConfig, error) {
	var store domain.Store
	opts := options.FindOne().SetProjection(bson.M{
		"_id": 1, "name": 1, "domain": 1, "videoUrl": 1, "clickableLink": 1,
	})
	err := r.col.FindOne(ctx, bson.M{"domain": pageDomain}, opts).Decode(&store)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("widget config: %w", err)
	}
	return &domain.WidgetConfig{
		Domain:        store.Domain,
		VideoURL:      store.VideoURL,
		ClickableLink: store.ClickableLink,
		StoreName:     store.Name,
		StoreID:       store.ID.Hex(),
	}, nil
}
