// Package container wires the dependency graph in order: config,
// infrastructure, repositories, services, handlers.
package container

import (
	"context"
	"fmt"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"

	"library-backend/internal/domains/auditlog"
	auditlogHandler "library-backend/internal/domains/auditlog/handler"
	auditlogRepo "library-backend/internal/domains/auditlog/repository"
	auditlogService "library-backend/internal/domains/auditlog/service"
	"library-backend/internal/domains/author"
	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	"library-backend/internal/domains/book"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
)

type Container struct {
	Config *config.Config
	Mongo  *database.MongoDB
	Cache  cache.Cache

	AuthorRepo author.Repository
	BookRepo   book.Repository
	LogRepo    auditlog.Repository

	AuthorService author.Service
	BookService   book.Service
	LogService    auditlog.Service

	AuthorHandler *authorHandler.Handler
	BookHandler   *bookHandler.Handler
	LogHandler    *auditlogHandler.Handler

	redis *infraCache.RedisCache
}

func NewContainer(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	mongoDB, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	c.Mongo = mongoDB

	// Schema guard: every collection must exist with its validator and
	// indexes before the server accepts traffic. Any unexpected failure
	// halts boot.
	err = database.EnsureCollections(ctx, mongoDB.DB,
		author.CollectionSpec(),
		book.CollectionSpec(),
		auditlog.CollectionSpec(),
	)
	if err != nil {
		return nil, fmt.Errorf("schema guard failed: %w", err)
	}

	if cfg.Redis.Enabled {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.redis = redisCache
		c.Cache = redisCache
	} else {
		c.Cache = infraCache.NewMemoryCache()
	}

	c.AuthorRepo = authorRepo.NewMongoRepository(mongoDB.DB)
	c.BookRepo = bookRepo.NewMongoRepository(mongoDB.DB)
	c.LogRepo = auditlogRepo.NewMongoRepository(mongoDB.DB)

	c.LogService = auditlogService.NewService(c.LogRepo)
	c.AuthorService = authorService.NewService(c.AuthorRepo, c.LogService)
	c.BookService = bookService.NewService(c.BookRepo, c.AuthorRepo, c.LogService)

	c.AuthorHandler = authorHandler.NewHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.LogHandler = auditlogHandler.NewHandler(c.LogService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
		"redis":       cfg.Redis.Enabled,
	})
	return c, nil
}

func (c *Container) Cleanup(ctx context.Context) {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			logger.Error("failed to close mongo", err)
		}
	}
}
