package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-api/internal/domains/author"
	bookModel "library-api/internal/domains/book/model"
	"library-api/internal/domains/user"
	"library-api/internal/shared/auth"
	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
	"library-api/pkg/container"
)

// NotFoundMessage answers unknown routes
const NotFoundMessage = "Route non trouvée"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIPMiddleware(),
		middleware.Logger(),
		middleware.SecurityHeaders(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)
	if c.RateLimiter != nil {
		router.Use(c.RateLimiter.Middleware())
	}

	router.GET("/", welcomeHandler(c))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthorRoutes(v1, c)
		setupBookRoutes(v1, c)
		c.LoanHandler.RegisterRoutes(v1, middleware.Authenticate(c.Verifier))
		setupUserRoutes(v1, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, NotFoundMessage)
	})

	return router
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticate := middleware.Authenticate(c.Verifier)
	staff := middleware.RequireRole(auth.RolePrivileged)

	authors := v1.Group("/auteurs")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.POST("", authenticate, staff, middleware.ValidateBody(author.CreateSchema), c.AuthorHandler.Create)
		authors.PUT("/:id", authenticate, staff, middleware.ValidateBody(author.UpdateSchema), c.AuthorHandler.Update)
		authors.DELETE("/:id", authenticate, middleware.RequireAdmin(), c.AuthorHandler.Delete)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticate := middleware.Authenticate(c.Verifier)
	staff := middleware.RequireRole(auth.RolePrivileged)

	books := v1.Group("/livres")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", authenticate, staff, middleware.ValidateBody(bookModel.CreateSchema), c.BookHandler.CreateBook)
		books.PUT("/:id", authenticate, staff, middleware.ValidateBody(bookModel.UpdateSchema), c.BookHandler.UpdateBook)
		books.DELETE("/:id", authenticate, middleware.RequireAdmin(), c.BookHandler.DeleteBook)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authenticate := middleware.Authenticate(c.Verifier)

	users := v1.Group("/utilisateurs")
	{
		// Registration is public; an admin token unlocks role and isAdmin
		users.POST("", middleware.OptionalAuthenticate(c.Verifier), middleware.ValidateBody(user.CreateSchema), c.UserHandler.Register)
		users.POST("/login", c.UserHandler.Login)

		users.GET("", authenticate, middleware.RequireAdmin(), c.UserHandler.ListUsers)
		users.GET("/:id", authenticate, c.UserHandler.GetUser)
		users.PUT("/:id", authenticate, middleware.ValidateBody(user.UpdateSchema), c.UserHandler.UpdateUser)
		users.DELETE("/:id", authenticate, middleware.RequireAdmin(), c.UserHandler.DeleteUser)
	}
}

// ========================================
// WELCOME & HEALTH
// ========================================
func welcomeHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":       "Bienvenue sur l'API de la bibliothèque",
			"version":       appCtx.Config.App.Version,
			"documentation": "/api-docs",
		})
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error: " + err.Error()
			} else if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		// Check redis; without it rate limiting is per process
		redisStatus := "disabled"
		if appCtx.Cache != nil {
			redisStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error: " + err.Error()
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
