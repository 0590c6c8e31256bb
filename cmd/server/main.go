package main

import (
	"log"
	"strconv"

	"pitchhub/config"
	"pitchhub/controllers"
	"pitchhub/db"
	"pitchhub/internal/livecall"
	"pitchhub/middlewares"
	"pitchhub/services"
	"pitchhub/utils"
	"pitchhub/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load the configuration from the specified YAML file
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB using the URI from the configuration
	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB")

	// Redis is optional: without it, rate limiting and context caching are off
	if cfg.Redis.Addr != "" {
		if err := livecall.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
			log.Printf("Redis unavailable, continuing without it: %v", err)
		} else {
			log.Println("Connected to Redis")
		}
	}

	services.Init(cfg)

	// Seed demo scenarios so a fresh install has rubrics to score against
	if cfg.Seed.Scenarios {
		utils.SeedScenarios()
	}

	// Set up the Gin router and configure routes
	router := setupRouter(cfg)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Set trusted proxies (adjust as needed)
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Org-ID", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Scoped routes: every call carries the already-authorized org/user ids
	scoped := router.Group("/")
	scoped.Use(middlewares.ScopeMiddleware())
	{
		scoped.POST("/calls/analyze", controllers.AnalyzeCall)
		scoped.GET("/attempts", controllers.GetAttempts)
		scoped.POST("/profile/refresh", controllers.RefreshProfile)
		scoped.GET("/coach/context", controllers.GetAgentContext)

		scoped.GET("/scenarios", controllers.ListScenarios)
		scoped.POST("/scenarios", controllers.CreateScenario)

		// Live call ingest
		scoped.GET("/ws/call", websocket.LiveCallHandler)
	}

	return router
}
