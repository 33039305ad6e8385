package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"notifyhub/auth"
	"notifyhub/config"
	"notifyhub/database"
	"notifyhub/handlers"
	"notifyhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Create context with timeout for initial connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	tokens := auth.NewTokenService(cfg.Auth.SecretKey)

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	api.POST("/login", handlers.Login(cfg.Auth, tokens))
	api.POST("/notify", middleware.NotifyKeyRequired(cfg.Auth.NotifyKey), handlers.Notify(db))

	operator := api.Group("", middleware.OperatorRequired(tokens))
	operator.POST("/projects", handlers.CreateProject(db))
	operator.GET("/projects", handlers.ListProjects(db))
	operator.DELETE("/projects/:id", handlers.DeleteProject(db))
	operator.GET("/messages", handlers.GetMessages(db))
	operator.DELETE("/messages/:id", handlers.DeleteMessage(db))
	operator.DELETE("/system/purge", handlers.PurgeMessages(db))

	registerSPAFallback(r, cfg.Server.StaticDir)

	log.Println("Server starting on :" + cfg.Server.Port)
	r.Run(":" + cfg.Server.Port)
}

// registerSPAFallback serves the built web UI for any unmatched GET: real
// files from the static dir first, then index.html so client-side routes
// resolve, then a JSON banner when no frontend build is present.
func registerSPAFallback(r *gin.Engine, staticDir string) {
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		path := filepath.Join(staticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Notify Hub API is running"})
	})
}
