// Package auditlog records every entity mutation in an append-only,
// capped collection. Entries outlive the entities they point at; the
// entityId is a historical pointer, never enforced to resolve.
package auditlog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/query"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type EntityType string

const (
	EntityBook   EntityType = "book"
	EntityAuthor EntityType = "author"
)

type Entry struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Action     Action             `json:"action" bson:"action"`
	EntityType EntityType         `json:"entityType" bson:"entityType"`
	EntityID   primitive.ObjectID `json:"entityId" bson:"entityId"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}

const CollectionName = "logs"

// Capped bounds for the log collection: oldest entries are evicted first
// once either limit is hit.
const (
	cappedSizeBytes = 1 << 20
	cappedMaxDocs   = 1000
)

// ListOptions is the query contract slice for log listings.
var ListOptions = query.Options{
	DefaultSort: "timestamp",
	DefaultDesc: true,
	Allowed:     []string{"timestamp", "action", "entityType"},
}

// CollectionSpec declares the capped logs collection with its write-time
// validation schema. No secondary indexes: capped collections are scanned
// in insertion order and stay small by construction.
func CollectionSpec() database.CollectionSpec {
	return database.CollectionSpec{
		Name: CollectionName,
		Capped: &database.CappedSpec{
			SizeBytes:    cappedSizeBytes,
			MaxDocuments: cappedMaxDocs,
		},
		Schema: bson.M{
			"bsonType": "object",
			"required": bson.A{"action", "entityType", "entityId", "timestamp"},
			"properties": bson.M{
				"action": bson.M{
					"enum": bson.A{"create", "update", "delete"},
				},
				"entityType": bson.M{
					"enum": bson.A{"book", "author"},
				},
				"entityId": bson.M{
					"bsonType": "objectId",
				},
				"timestamp": bson.M{
					"bsonType": "date",
				},
			},
		},
	}
}
