// Package container builds the application's dependency graph in one place:
// config, logging, database, cache, stores, services and handlers. If any
// required dependency fails to initialize, the application does not start.
package container

import (
	"context"
	"fmt"
	"time"

	"bookmarketplace-backend/internal/config"
	"bookmarketplace-backend/internal/domains/catalog"
	"bookmarketplace-backend/internal/domains/catalog/handler"
	"bookmarketplace-backend/internal/domains/catalog/service"
	"bookmarketplace-backend/internal/infrastructure/cache"
	"bookmarketplace-backend/internal/infrastructure/database"
	"bookmarketplace-backend/internal/infrastructure/store/postgres"
	"bookmarketplace-backend/pkg/logger"
)

type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  *cache.RedisClient

	ClientService    catalog.ClientService
	SellerService    catalog.SellerService
	BookService      catalog.BookService
	AuthorService    catalog.AuthorService
	GenreService     catalog.GenreService
	PublisherService catalog.PublisherService

	AuthorHandler    *handler.AuthorHandler
	BookHandler      *handler.BookHandler
	GenreHandler     *handler.GenreHandler
	PublisherHandler *handler.PublisherHandler
	SellerHandler    *handler.SellerHandler
}

func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(cfg.Database.DSN()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// The cache is an optimization, not a dependency: if Redis is down the
	// API serves every read from the database.
	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(ctx); err != nil {
		logger.Warn("redis unavailable, caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
		_ = redisClient.Close()
		redisClient = nil
	}

	store := postgres.NewStore(db.Pool)
	tx := postgres.NewTxRunner(db.Pool)

	c := &Container{
		Config: cfg,
		DB:     db,
		Cache:  redisClient,

		ClientService:    service.NewClientService(store, tx),
		SellerService:    service.NewSellerService(store, tx),
		BookService:      service.NewBookService(store, tx),
		AuthorService:    service.NewAuthorService(store, tx),
		GenreService:     service.NewGenreService(store, tx),
		PublisherService: service.NewPublisherService(store, tx),
	}

	c.AuthorHandler = handler.NewAuthorHandler(c.AuthorService)
	c.GenreHandler = handler.NewGenreHandler(c.GenreService)
	c.PublisherHandler = handler.NewPublisherHandler(c.PublisherService)
	c.SellerHandler = handler.NewSellerHandler(c.SellerService)
	if redisClient != nil {
		c.BookHandler = handler.NewBookHandler(c.BookService, redisClient)
	} else {
		c.BookHandler = handler.NewBookHandler(c.BookService, nil)
	}

	return c, nil
}

// Cleanup releases held connections. Safe to call on a partially built
// container.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("closing redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
