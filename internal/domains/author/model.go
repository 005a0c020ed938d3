package author

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"library-backend/internal/infrastructure/database"
)

type Author struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Bio       string             `json:"bio" bson:"bio"`
	Age       *int               `json:"age,omitempty" bson:"age,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BookRef is the projection of a book inside an author-with-books join:
// just enough to link through, never the whole document.
type BookRef struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
}

// WithBooks is the author shape augmented with the joined books list. An
// empty list is a valid result; an absent author is not.
type WithBooks struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Bio   string             `json:"bio" bson:"bio"`
	Books []BookRef          `json:"books" bson:"books"`
}

const CollectionName = "authors"

// CollectionSpec declares the authors collection: write-time schema
// validation plus a non-unique index on name for the default sort.
func CollectionSpec() database.CollectionSpec {
	return database.CollectionSpec{
		Name: CollectionName,
		Schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"name"},
			"properties": bson.M{
				"name": bson.M{
					"bsonType":    "string",
					"minLength":   1,
					"description": "Required and must be at least 1 character",
				},
				"bio": bson.M{
					"bsonType":    "string",
					"description": "Optional biography",
				},
				"age": bson.M{
					"bsonType":    "int",
					"minimum":     0,
					"maximum":     150,
					"description": "Optional age in years",
				},
			},
		},
		Indexes: []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}
}
