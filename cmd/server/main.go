package main

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/postline/backend/internal/router"
	"github.com/postline/backend/pkg/config"
	"github.com/postline/backend/pkg/firebase"
	"github.com/postline/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.Env == "production"); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.L.Fatal("Failed to initialize databases: " + err.Error())
	}
	defer db.CloseDB()

	// Firebase is optional: without credentials only local JWT auth is available
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			logger.L.Fatal("Failed to initialize Firebase: " + err.Error())
		}
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
