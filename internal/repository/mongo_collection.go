package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fitstack/fitstack/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionConfig is the per-resource configuration for the generic Mongo
// collection: names, list behavior, owner scoping and unique indexes.
type CollectionConfig struct {
	Name        string
	Defaults    domain.ListDefaults
	OwnerField  string   // bson field holding the owning user id; empty for global resources
	UniqueField string   // optional unique index (e.g. exercise name)
	IndexFields []string // plain secondary indexes
}

// Collection implements domain.ListRepository[T] for any resource embedding
// domain.Model. One implementation serves every resource type; the
// per-resource differences live entirely in CollectionConfig.
type Collection[T any, P interface {
	*T
	domain.Entity
}] struct {
	collection *mongo.Collection
	cfg        CollectionConfig
}

// NewCollection creates the repository and its indexes.
func NewCollection[T any, P interface {
	*T
	domain.Entity
}](db *mongo.Database, cfg CollectionConfig) *Collection[T, P] {
	coll := db.Collection(cfg.Name)

	// Create indexes
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var models []mongo.IndexModel
	if cfg.UniqueField != "" {
		models = append(models, mongo.IndexModel{
			Keys:    bson.M{cfg.UniqueField: 1},
			Options: options.Index().SetUnique(true),
		})
	}
	if cfg.OwnerField != "" {
		models = append(models, mongo.IndexModel{Keys: bson.M{cfg.OwnerField: 1}})
	}
	for _, f := range cfg.IndexFields {
		models = append(models, mongo.IndexModel{Keys: bson.M{f: 1}})
	}
	if len(models) > 0 {
		coll.Indexes().CreateMany(ctx, models)
	}

	return &Collection[T, P]{
		collection: coll,
		cfg:        cfg,
	}
}

func (r *Collection[T, P]) Create(ctx context.Context, e *T) error {
	p := P(e)
	if p.EntityID() == "" {
		p.SetEntityID(ulid.Make().String())
	}
	p.StampTimes(time.Now().UTC(), true)

	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("failed to create %s: %w", r.cfg.Name, err)
	}
	return nil
}

func (r *Collection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	var e T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns one page plus the total matching the query. Search is a
// case-insensitive regex OR across the configured search fields; sort fields
// outside the allow-list fall back to the resource default via Normalize.
func (r *Collection[T, P]) List(ctx context.Context, q domain.ListQuery) (*domain.ListResult[T], error) {
	q = q.Normalize(r.cfg.Defaults)

	filter := r.buildFilter(q)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", r.cfg.Name, err)
	}

	dir := 1
	if q.Order == domain.OrderDesc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.Sort, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.cfg.Name, err)
	}
	defer cursor.Close(ctx)

	items := make([]*T, 0, q.Limit)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return &domain.ListResult[T]{Items: items, Total: total}, nil
}

func (r *Collection[T, P]) Update(ctx context.Context, id string, e *T) (*T, error) {
	if id == "" {
		return nil, domain.ErrInvalidID
	}

	p := P(e)
	p.SetEntityID(id)
	p.StampTimes(time.Now().UTC(), false)

	set, err := toSetDocument(e)
	if err != nil {
		return nil, err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update %s: %w", r.cfg.Name, err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *Collection[T, P]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.cfg.Name, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns the number of documents, owner-scoped when configured.
func (r *Collection[T, P]) Count(ctx context.Context, owner string) (int64, error) {
	filter := bson.M{}
	if r.cfg.OwnerField != "" && owner != "" {
		filter[r.cfg.OwnerField] = owner
	}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *Collection[T, P]) buildFilter(q domain.ListQuery) bson.M {
	filter := bson.M{}
	if r.cfg.OwnerField != "" && q.Owner != "" {
		filter[r.cfg.OwnerField] = q.Owner
	}
	if q.Search != "" && len(r.cfg.Defaults.SearchFields) > 0 {
		or := make([]bson.M, 0, len(r.cfg.Defaults.SearchFields))
		for _, f := range r.cfg.Defaults.SearchFields {
			or = append(or, bson.M{f: bson.M{"$regex": q.Search, "$options": "i"}})
		}
		filter["$or"] = or
	}
	return filter
}

// toSetDocument marshals the entity into a bson map with the immutable
// fields stripped, so $set never touches _id or created_at.
func toSetDocument(e any) (bson.M, error) {
	raw, err := bson.Marshal(e)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	delete(doc, "created_at")
	return doc, nil
}
