package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	rateLimit := middleware.RateLimitInProcess(c.Config.RateLimit.Window, c.Config.RateLimit.Max)
	if c.Config.Redis.Enabled {
		rateLimit = middleware.RateLimit(c.Cache, c.Config.RateLimit.Window, c.Config.RateLimit.Max)
	}

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		rateLimit,
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "router not found")
	})

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(api, c)
		setupBookRoutes(api, c)
		setupLogRoutes(api, c)
	}

	return router
}

func setupAuthorRoutes(api *gin.RouterGroup, c *container.Container) {
	authors := api.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.CreateAuthor)
		authors.GET("", c.AuthorHandler.ListAuthors)
		authors.GET("/:id", c.AuthorHandler.GetAuthor)
		authors.GET("/:id/books", c.AuthorHandler.GetAuthorBooks)
		authors.PATCH("/:id", c.AuthorHandler.UpdateAuthor)
	}
}

func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.POST("", c.BookHandler.CreateBook)
		books.POST("/bulk", c.BookHandler.CreateBooks)
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.GET("/:id/author", c.BookHandler.GetBookAuthor)
		books.PATCH("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// Logs are read-only over HTTP: entries are appended by the mutation
// paths, never by clients.
func setupLogRoutes(api *gin.RouterGroup, c *container.Container) {
	logs := api.Group("/logs")
	{
		logs.GET("", c.LogHandler.ListLogs)
		logs.GET("/:id", c.LogHandler.GetLog)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.Mongo.HealthCheck(ctx.Request.Context()); err != nil {
			response.ErrorResponse(ctx, http.StatusServiceUnavailable,
				response.NameInternalError, "database unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, "ok", gin.H{"status": "healthy"})
	}
}
