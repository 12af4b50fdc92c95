package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	// Check for maintenance commands
	migrateCmd := flag.Bool("migrate", false, "Run database migration")
	seedDemoCmd := flag.Bool("seed-demo", false, "Seed demo user and transactions (idempotent)")
	flag.Parse()

	loadEnv()

	// Amounts serialize as JSON numbers, matching the API contract
	decimal.MarshalJSONWithoutQuotes = true

	if *migrateCmd {
		if err := setupDatabase(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("migration completed successfully")
		os.Exit(0)
	}
	if *seedDemoCmd {
		if err := initDB(); err != nil {
			slog.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := seedDemoData(db); err != nil {
			slog.Error("seeding demo data failed", "error", err)
			os.Exit(1)
		}
		slog.Info("demo data seeded")
		os.Exit(0)
	}

	// Initialize database
	if err := initDB(); err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Redis
	if err := initRedis(); err != nil {
		slog.Warn("failed to initialize redis, continuing without cache", "error", err)
		redisClient = nil
	}

	// Setup Gin router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Routes
	r.GET("/health", healthCheck)

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/register", register)
		authRoutes.POST("/login", login)
		authRoutes.GET("/me", authRequired(), me)
	}

	api := r.Group("/api", authRequired())
	{
		api.GET("/transactions", getTransactions)
		api.POST("/transactions", addTransaction)
		api.GET("/transactions/:id", getTransaction)
		api.PUT("/transactions/:id", updateTransaction)
		api.DELETE("/transactions/:id", deleteTransaction)

		api.GET("/categories", getCategories)
		api.GET("/categories/:id", getCategory)

		api.GET("/charts/summary", getSummary)
		api.GET("/charts/trends", getTrends)
		api.GET("/charts/category-breakdown", getCategoryBreakdown)
	}

	// Start server
	port := serverPort()

	slog.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	if err := db.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "finance-tracker",
	})
}
