package main

import (
	"log"
	"net/http"

	"creatorvault/config"
	"creatorvault/config/database"
	"creatorvault/pkg/logger"
	"creatorvault/router"
	"creatorvault/socket"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Sugar.Fatalf("%v", err)
	}
	defer db.Close()

	// The hub fans idea change events out to connected clients. Its event
	// loop runs in its own goroutine so it doesn't block the main thread.
	hub := socket.NewHub()
	go hub.Run()

	handler := router.Setup(db, hub, cfg)

	logger.Sugar.Infof("CreatorVault backend listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
