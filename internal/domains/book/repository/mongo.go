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
	"library-backend/pkg/logger"
)

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(book.CollectionName)}
}

func (r *MongoRepository) Insert(ctx context.Context, b *book.Book) (primitive.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert book: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("insert book: unexpected id type %T", res.InsertedID)
	}
	b.ID = id
	return id, nil
}

// InsertMany writes the batch unordered, so one rejected document does
// not block the rest. On a partial bulk failure the successfully written
// books are still returned. Ids are assigned up front to keep the result
// aligned with the input when the store rejects a middle document.
func (r *MongoRepository) InsertMany(ctx context.Context, books []book.Book) ([]book.Book, error) {
	docs := make([]interface{}, len(books))
	for i := range books {
		books[i].ID = primitive.NewObjectID()
		docs[i] = books[i]
	}

	failed := map[int]struct{}{}
	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		var bulkErr mongo.BulkWriteException
		if !errors.As(err, &bulkErr) {
			return nil, fmt.Errorf("bulk insert books: %w", err)
		}
		logger.Error("bulk insert partially failed", err)
		for _, writeErr := range bulkErr.WriteErrors {
			failed[writeErr.Index] = struct{}{}
		}
	}

	inserted := make([]book.Book, 0, len(books))
	for i := range books {
		if _, ok := failed[i]; ok {
			continue
		}
		inserted = append(inserted, books[i])
	}
	return inserted, nil
}

func (r *MongoRepository) List(ctx context.Context, params query.Params) ([]book.Book, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: params.SortField, Value: params.SortDirection()}}).
		SetSkip(int64(params.Skip)).
		SetLimit(int64(params.Limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cursor.Close(ctx)

	books := []book.Book{}
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	var b book.Book
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, book.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find book by id: %w", err)
	}
	return &b, nil
}

// GetWithAuthor joins the authors collection on authorId. The $unwind
// stage makes it an inner join: a book whose author is gone yields no
// document, which surfaces as not-found.
func (r *MongoRepository) GetWithAuthor(ctx context.Context, id primitive.ObjectID) (*book.WithAuthor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         author.CollectionName,
			"localField":   "authorId",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: "$author"}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate book with author: %w", err)
	}
	defer cursor.Close(ctx)

	var results []book.WithAuthor
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode book with author: %w", err)
	}
	if len(results) == 0 {
		return nil, book.ErrBookNotFound
	}
	return &results[0], nil
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, req book.UpdateRequest) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Summary != nil {
		set["summary"] = *req.Summary
	}
	if req.Year != nil {
		set["year"] = *req.Year
	}
	if req.Genres != nil {
		set["genres"] = *req.Genres
	}
	if req.AuthorID != nil {
		authorID, err := primitive.ObjectIDFromHex(*req.AuthorID)
		if err != nil {
			return book.ErrInvalidID
		}
		set["authorId"] = authorID
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete book: %w", err)
	}
	return res.DeletedCount, nil
}
