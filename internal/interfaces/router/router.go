package router

import (
	"context"
	"fmt"
	"time"

	authsvc "nearvisit-backend/internal/application/auth"
	listsvc "nearvisit-backend/internal/application/listings"
	locsvc "nearvisit-backend/internal/application/locations"
	revsvc "nearvisit-backend/internal/application/reviews"
	uploadsvc "nearvisit-backend/internal/application/uploads"
	usersvc "nearvisit-backend/internal/application/user"
	"nearvisit-backend/internal/config"
	"nearvisit-backend/internal/infrastructure/database"
	authhandler "nearvisit-backend/internal/interfaces/handlers/auth"
	healthhandler "nearvisit-backend/internal/interfaces/handlers/health"
	listhandler "nearvisit-backend/internal/interfaces/handlers/listings"
	lochandler "nearvisit-backend/internal/interfaces/handlers/locations"
	revhandler "nearvisit-backend/internal/interfaces/handlers/reviews"
	userhandler "nearvisit-backend/internal/interfaces/handlers/user"
	"nearvisit-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the routes share. Rdb may be nil.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Rdb     *redis.Client
	Tokens  *authsvc.TokenService
	Uploads *uploadsvc.Service
}

// CreateApp opens the database (migrating it), Redis when configured and the
// upload directory, then builds the app. The caller closes DB and Rdb.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL, database.Options{MaxOpenConns: cfg.DBMaxOpenConns})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		opt.ContextTimeoutEnabled = true
		rdb = redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable at startup; health marker stays installed and each stats write gives up after its timeout")
		}
	}

	tokens, err := authsvc.NewTokenService(cfg.JWTSecret)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}
	uploads, err := uploadsvc.NewLocal(cfg.UploadDir)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, nil, err
	}

	app := NewApp(Deps{Config: cfg, DB: db, Rdb: rdb, Tokens: tokens, Uploads: uploads})
	return app, db, rdb, nil
}

// NewApp registers middleware and routes over already opened resources.
func NewApp(d Deps) *fiber.App {
	cfg := d.Config
	bodyLimit := cfg.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 25
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             bodyLimit * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	if d.Rdb != nil {
		app.Use(middleware.HealthMarker(d.Rdb))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("NearVisit API is running")
	})

	hh := &healthhandler.Handlers{Rdb: d.Rdb, HealthAdminKey: cfg.HealthAdminKey}
	if sqlDB, err := d.DB.DB(); err == nil {
		hh.DB = sqlDB
	}
	app.Get("/health", hh.Dashboard)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	app.Static("/uploads", cfg.UploadDir)

	requireAuth := middleware.RequireAuth(d.Tokens)
	api := app.Group("/api")

	ah := &authhandler.Handlers{Service: &authsvc.Service{DB: d.DB, Tokens: d.Tokens, BcryptCost: cfg.BcryptCost}}
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", ah.Signup)
	authGroup.Post("/login", ah.Login)

	uh := &userhandler.Handlers{Service: &usersvc.Service{DB: d.DB}}
	api.Get("/users/profile", requireAuth, uh.Profile)

	listings := &listsvc.Service{DB: d.DB, Uploads: d.Uploads}
	lh := &listhandler.Handlers{Service: listings}
	listGroup := api.Group("/listings", requireAuth)
	listGroup.Post("/create", lh.CreateListing)
	listGroup.Get("/", lh.GetUserListings)
	listGroup.Get("/specific/:id", lh.GetListingByID)

	loc := &lochandler.Handlers{Service: &locsvc.Service{DB: d.DB}}
	locGroup := api.Group("/location", requireAuth)
	locGroup.Get("/states", loc.ListStates)
	locGroup.Post("/states", loc.CreateState)
	locGroup.Put("/states/:id", loc.UpdateState)
	locGroup.Delete("/states/:id", loc.DeleteState)
	locGroup.Get("/cities", loc.ListCities)
	locGroup.Post("/cities", loc.CreateCity)
	locGroup.Put("/cities/:id", loc.UpdateCity)
	locGroup.Delete("/cities/:id", loc.DeleteCity)
	locGroup.Get("/cities/state/:stateId", loc.ListCitiesByState)
	locGroup.Get("/categories", loc.ListCategories)
	locGroup.Post("/categories", loc.CreateCategory)
	locGroup.Put("/categories/:id", loc.UpdateCategory)
	locGroup.Delete("/categories/:id", loc.DeleteCategory)
	locGroup.Get("/subcategories", loc.ListSubcategories)
	locGroup.Post("/subcategories", loc.CreateSubcategory)
	locGroup.Put("/subcategories/:id", loc.UpdateSubcategory)
	locGroup.Delete("/subcategories/:id", loc.DeleteSubcategory)
	locGroup.Get("/subcategories/category/:categoryId", loc.ListSubcategoriesByCategory)

	rh := &revhandler.Handlers{Service: &revsvc.Service{DB: d.DB, Listings: listings}}
	revGroup := api.Group("/reviews", requireAuth)
	revGroup.Post("/", rh.SubmitReview)
	revGroup.Get("/:listingId", rh.GetListingReviews)

	return app
}
