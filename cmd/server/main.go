package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benni94/mazeChromeBE/internal/api"
	"github.com/benni94/mazeChromeBE/internal/config"
	"github.com/benni94/mazeChromeBE/internal/repository"
	"github.com/benni94/mazeChromeBE/pkg/database"
	"github.com/benni94/mazeChromeBE/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Env, cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting maze leaderboard backend",
		"port", cfg.Port,
		"env", cfg.Env,
	)

	db, err := database.Open(cfg.DBFile)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer db.Close()

	if err := repository.NewProgressRepository(db).EnsureSchema(context.Background()); err != nil {
		logger.Fatal("Failed to ensure schema", "error", err)
	}

	router, err := api.SetupRouter(cfg, db)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "address", srv.Addr)
		if cfg.Env != "production" {
			// so the leaderboard can be opened from other machines in class
			logger.Info("Reachable on the local network",
				"url", fmt.Sprintf("http://%s:%s", localIP(), cfg.Port))
		}

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// localIP returns the first non-loopback IPv4 address, falling back to
// localhost.
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}

	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok && !ipNet.IP.IsLoopback() {
			if v4 := ipNet.IP.To4(); v4 != nil {
				return v4.String()
			}
		}
	}

	return "localhost"
}
