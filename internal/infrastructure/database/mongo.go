package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"library-backend/internal/config"
	"library-backend/pkg/logger"
)

// MongoDB wraps the driver client together with the application database.
type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials the document store and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	logger.Info("database connected successfully", map[string]interface{}{
		"database": cfg.Database,
	})

	return &MongoDB{
		Client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
