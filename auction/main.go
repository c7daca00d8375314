// auction/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	auctionapi "github.com/Ftotnem/GO-AUCTIONS/auction/api"
	"github.com/Ftotnem/GO-AUCTIONS/auction/schema"
	"github.com/Ftotnem/GO-AUCTIONS/auction/store"
	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/Ftotnem/GO-AUCTIONS/shared/config"
	"github.com/Ftotnem/GO-AUCTIONS/shared/health"
	mongodbu "github.com/Ftotnem/GO-AUCTIONS/shared/mongodb"
	redisu "github.com/Ftotnem/GO-AUCTIONS/shared/redis"
	"github.com/Ftotnem/GO-AUCTIONS/shared/registry"
	"github.com/Ftotnem/GO-AUCTIONS/shared/service"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	// --- 1. Load Configuration ---
	cfg, err := config.LoadAuctionServiceConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// --- 2. Connect to MongoDB ---
	mongoClient, err := mongodbu.NewClient(context.Background(), cfg.MongoDBConnStr, cfg.MongoDBDatabase)
	if err != nil {
		logger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Printf("ERROR: Failed to disconnect from MongoDB: %v", err)
			return
		}
		logger.Println("Disconnected from MongoDB.")
	}()

	// --- 3. Initialize Data Stores and their unique name indexes ---
	playerStore := store.NewPlayerStore(mongoClient.Collection(cfg.MongoDBPlayersCollection))
	auctionStore := store.NewAuctionStore(mongoClient.Collection(cfg.MongoDBAuctionsCollection))

	indexCtx, indexCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := playerStore.EnsureIndexes(indexCtx); err != nil {
		logger.Fatalf("Failed to ensure player indexes: %v", err)
	}
	if err := auctionStore.EnsureIndexes(indexCtx); err != nil {
		logger.Fatalf("Failed to ensure auction indexes: %v", err)
	}
	indexCancel()

	// --- 4. Health checks ---
	checkers := []health.Checker{{Name: "mongodb", Check: mongoClient.Ping}}

	// --- 5. Optional service registration in Redis ---
	if cfg.RegistryEnabled() {
		redisClient, err := redisu.NewRedisClient(context.Background(), cfg.RedisAddrs, cfg.RedisPassword)
		if err != nil {
			logger.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Printf("ERROR: Error closing Redis client: %v", err)
			}
		}()
		checkers = append(checkers, health.Checker{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})

		registrar := registry.NewServiceRegistrar(redisClient, service.AuctionServiceType, &cfg.CommonConfig,
			map[string]string{"version": "1.0"})
		registrar.Start()
		defer registrar.Stop()
	} else {
		logger.Println("INFO: REDIS_ADDRS not set, service registration disabled.")
	}
	healthHandler := health.NewHandler(logger, checkers...)

	// --- 6. Initialize API Handlers ---
	handlers := auctionapi.NewAuctionAPIHandlers(playerStore, auctionStore, schema.NewValidator(), logger)
	handlers.RequestTimeout = cfg.RequestTimeout

	// --- 7. Setup HTTP Server and Register Routes ---
	baseServer := api.NewBaseServer(cfg.ListenAddr, logger)
	handlers.RegisterRoutes(baseServer.Router)
	healthHandler.RegisterRoutes(baseServer.Router)

	// --- 8. Start HTTP Server ---
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- baseServer.Start()
	}()
	healthHandler.SetReady(true)

	// --- 9. Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		logger.Printf("Received %v, shutting down server...", sig)
	case err := <-serverErr:
		if err != nil {
			logger.Printf("ERROR: %v", err)
		}
	}
	healthHandler.SetReady(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := baseServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("ERROR: HTTP server graceful shutdown failed: %v", err)
		return
	}
	logger.Println("Server gracefully stopped.")
}
