package book

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"library-backend/internal/domains/author"
	"library-backend/internal/infrastructure/database"
)

type Book struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	AuthorID  primitive.ObjectID `json:"authorId" bson:"authorId"`
	Year      *int               `json:"year,omitempty" bson:"year,omitempty"`
	Summary   string             `json:"summary,omitempty" bson:"summary,omitempty"`
	Genres    []string           `json:"genres,omitempty" bson:"genres,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// WithAuthor is the book joined with its author (inner join: a book whose
// author no longer exists produces no result).
type WithAuthor struct {
	Book   `bson:",inline"`
	Author author.Author `json:"author" bson:"author"`
}

const CollectionName = "books"

func yearUpperBound() int {
	return time.Now().Year()
}

// CollectionSpec declares the books collection: write-time schema
// validation, the authorId index backing joins, a text index on title and
// an index on genres.
func CollectionSpec() database.CollectionSpec {
	return database.CollectionSpec{
		Name: CollectionName,
		Schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "authorId", "createdAt"},
			"properties": bson.M{
				"title": bson.M{
					"bsonType":    "string",
					"minLength":   1,
					"description": "Required and must be at least 1 character",
				},
				"authorId": bson.M{
					"bsonType":    "objectId",
					"description": "Must reference an author document",
				},
				"genres": bson.M{
					"bsonType":    "array",
					"items":       bson.M{"bsonType": "string"},
					"description": "Array of genre strings",
				},
				"year": bson.M{
					"bsonType":    "int",
					"minimum":     1000,
					"maximum":     yearUpperBound(),
					"description": "Year between 1000 and current year",
				},
				"summary": bson.M{
					"bsonType":    "string",
					"description": "Optional summary",
				},
				"createdAt": bson.M{
					"bsonType":    "date",
					"description": "Auto-set on insert",
				},
				"updatedAt": bson.M{
					"bsonType":    "date",
					"description": "Auto-updated on changes",
				},
			},
		},
		Indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "authorId", Value: 1}}},
			{Keys: bson.D{{Key: "title", Value: "text"}}},
			{Keys: bson.D{{Key: "genres", Value: 1}}},
		},
	}
}
