package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/shared/query"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(author.CollectionName)}
}

func (r *MongoRepository) Insert(ctx context.Context, a *author.Author) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert author: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert author: unexpected id type %T", res.InsertedID)
	}
	a.ID = id
	return id, nil
}

func (r *MongoRepository) List(ctx context.Context, params query.Params) ([]author.Author, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: params.SortField, Value: params.SortDirection()}}).
		SetSkip(int64(params.Skip)).
		SetLimit(int64(params.Limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find authors: %w", err)
	}
	defer cursor.Close(ctx)

	authors := []author.Author{}
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	return authors, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	var a author.Author
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, author.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return &a, nil
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, req author.UpdateRequest) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Age != nil {
		set["age"] = *req.Age
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if res.MatchedCount == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// GetWithBooks joins the books collection on authorId and projects each
// book down to id and title.
func (r *MongoRepository) GetWithBooks(ctx context.Context, id primitive.ObjectID) (*author.WithBooks, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         book.CollectionName,
			"localField":   "_id",
			"foreignField": "authorId",
			"as":           "books",
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":  1,
			"name": 1,
			"bio":  1,
			"books": bson.M{
				"$map": bson.M{
					"input": "$books",
					"as":    "book",
					"in": bson.M{
						"_id":   "$$book._id",
						"title": "$$book.title",
					},
				},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate author with books: %w", err)
	}
	defer cursor.Close(ctx)

	var results []author.WithBooks
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode author with books: %w", err)
	}
	if len(results) == 0 {
		return nil, author.ErrAuthorNotFound
	}
	return &results[0], nil
}

func (r *MongoRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check author existence: %w", err)
	}
	return count > 0, nil
}

// ExistingIDs resolves which of the given ids are live authors with a
// single $in query, so bulk inserts never pay one round-trip per book.
func (r *MongoRepository) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	existing := make(map[primitive.ObjectID]struct{}, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	cursor, err := r.coll.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"_id": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("resolve author ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode author ids: %w", err)
	}

	for _, doc := range docs {
		existing[doc.ID] = struct{}{}
	}
	return existing, nil
}
