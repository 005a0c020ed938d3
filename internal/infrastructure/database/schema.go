package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-backend/pkg/logger"
)

// namespaceExistsCode is returned by createCollection when another process
// created the collection between our existence check and the create call.
const namespaceExistsCode = 48

// CappedSpec bounds a collection by bytes and document count. Insertion
// order defines eviction order: the store drops the oldest entries first.
type CappedSpec struct {
	SizeBytes    int64
	MaxDocuments int64
}

// CollectionSpec declares everything a logical collection needs before the
// server may accept traffic: a $jsonSchema validator enforced by the store
// on every write, the required indexes, and optional capped bounds.
type CollectionSpec struct {
	Name    string
	Schema  bson.M // $jsonSchema body
	Indexes []mongo.IndexModel
	Capped  *CappedSpec
}

// EnsureCollection is idempotent: it creates the collection only when it is
// absent and then (re)creates the required indexes regardless. An existing
// collection is never an error; any other creation failure is.
func EnsureCollection(ctx context.Context, db *mongo.Database, spec CollectionSpec) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": spec.Name})
	if err != nil {
		return fmt.Errorf("list collections for %q: %w", spec.Name, err)
	}

	if len(names) == 0 {
		opts := options.CreateCollection()
		if spec.Schema != nil {
			opts.SetValidator(bson.M{"$jsonSchema": spec.Schema})
		}
		if spec.Capped != nil {
			opts.SetCapped(true).
				SetSizeInBytes(spec.Capped.SizeBytes).
				SetMaxDocuments(spec.Capped.MaxDocuments)
		}

		if err := db.CreateCollection(ctx, spec.Name, opts); err != nil {
			var cmdErr mongo.CommandError
			if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExistsCode {
				return fmt.Errorf("create collection %q: %w", spec.Name, err)
			}
		} else {
			logger.Info("created collection with schema validation", map[string]interface{}{
				"collection": spec.Name,
				"capped":     spec.Capped != nil,
			})
		}
	}

	if len(spec.Indexes) > 0 {
		if _, err := db.Collection(spec.Name).Indexes().CreateMany(ctx, spec.Indexes); err != nil {
			return fmt.Errorf("create indexes for %q: %w", spec.Name, err)
		}
	}

	logger.Info("schema ready", map[string]interface{}{"collection": spec.Name})
	return nil
}

// EnsureCollections runs the schema guard for every spec, in order. The
// first failure halts boot.
func EnsureCollections(ctx context.Context, db *mongo.Database, specs ...CollectionSpec) error {
	for _, spec := range specs {
		if err := EnsureCollection(ctx, db, spec); err != nil {
			return err
		}
	}
	return nil
}
