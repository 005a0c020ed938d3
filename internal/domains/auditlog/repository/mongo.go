package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-backend/internal/domains/auditlog"
	"library-backend/internal/shared/query"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(auditlog.CollectionName)}
}

func (r *MongoRepository) Insert(ctx context.Context, entry *auditlog.Entry) error {
	res, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, params query.Params) ([]auditlog.Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: params.SortField, Value: params.SortDirection()}}).
		SetSkip(int64(params.Skip)).
		SetLimit(int64(params.Limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find log entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []auditlog.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode log entries: %w", err)
	}
	return entries, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count log entries: %w", err)
	}
	return total, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*auditlog.Entry, error) {
	var entry auditlog.Entry
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, auditlog.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find log entry by id: %w", err)
	}
	return &entry, nil
}
