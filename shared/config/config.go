// shared/config/config.go
package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// CommonConfig holds configuration fields that are shared across multiple services.
type CommonConfig struct {
	RedisAddrs              []string      // Redis server addresses (e.g., "redis:6379"); empty disables registration
	RedisPassword           string        // Redis password for authentication
	HeartbeatInterval       time.Duration // How often to send a heartbeat to registry (e.g., 5s)
	HeartbeatTTL            time.Duration // How long an instance is considered alive without a heartbeat (e.g., 15s)
	RegistryCleanupInterval time.Duration // How often the registry actively cleans stale entries (e.g., 30s)
	ServiceIP               string        // The IP address this service advertises for registration (Kubernetes Pod IP)
	ServicePort             int           // The port this service listens on, used for registration
}

// RegistryEnabled reports whether Redis addresses were configured.
func (c CommonConfig) RegistryEnabled() bool {
	return len(c.RedisAddrs) > 0
}

// AuctionServiceConfig holds configuration specific to the auction-service.
type AuctionServiceConfig struct {
	CommonConfig                            // Embed CommonConfig
	ListenAddr                string        // Address for the HTTP server to listen on (e.g., ":8083")
	MongoDBConnStr            string        // MongoDB connection string
	MongoDBDatabase           string        // MongoDB database name (e.g., "auctions")
	MongoDBPlayersCollection  string        // MongoDB collection for players
	MongoDBAuctionsCollection string        // MongoDB collection for auctions
	RequestTimeout            time.Duration // Deadline for store calls made on behalf of one request
	ShutdownTimeout           time.Duration // Grace period for in-flight requests on SIGTERM
}

// LoadCommonConfig loads common configuration from environment variables.
func LoadCommonConfig() (CommonConfig, error) {
	cfg := CommonConfig{}
	var err error

	cfg.RedisAddrs = splitList(os.Getenv("REDIS_ADDRS"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.HeartbeatInterval, err = getDuration("SERVICE_HEARTBEAT_INTERVAL", 5*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.HeartbeatTTL, err = getDuration("SERVICE_HEARTBEAT_TTL", 15*time.Second)
	if err != nil {
		return cfg, err
	}
	cfg.RegistryCleanupInterval, err = getDuration("SERVICE_REGISTRY_CLEANUP_INTERVAL", 30*time.Second)
	if err != nil {
		return cfg, err
	}
	if cfg.HeartbeatInterval <= 0 {
		return cfg, fmt.Errorf("SERVICE_HEARTBEAT_INTERVAL must be positive (got %v)", cfg.HeartbeatInterval)
	}

	// Service IP (for registration, from Kubernetes Pod IP)
	cfg.ServiceIP = os.Getenv("POD_IP")
	if cfg.ServiceIP == "" && cfg.RegistryEnabled() {
		// Fallback for local development outside K8s or if not injected
		cfg.ServiceIP = "0.0.0.0"
		log.Printf("WARNING: POD_IP not set, defaulting ServiceIP to %s", cfg.ServiceIP)
	}

	return cfg, nil
}

// LoadAuctionServiceConfig loads configuration for the auction-service.
func LoadAuctionServiceConfig() (*AuctionServiceConfig, error) {
	common, err := LoadCommonConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load common config for auction-service: %w", err)
	}

	cfg := &AuctionServiceConfig{
		CommonConfig:              common,
		ListenAddr:                getString("AUCTION_SERVICE_LISTEN_ADDR", ":8083"),
		MongoDBConnStr:            getString("MONGODB_CONN_STR", "mongodb://mongodb-service:27017"),
		MongoDBDatabase:           getString("MONGODB_DATABASE", "auctions"),
		MongoDBPlayersCollection:  getString("MONGODB_PLAYERS_COLLECTION", "players"),
		MongoDBAuctionsCollection: getString("MONGODB_AUCTIONS_COLLECTION", "auctions"),
	}

	cfg.RequestTimeout, err = getDuration("AUCTION_REQUEST_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownTimeout, err = getDuration("AUCTION_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	// Extract ServicePort from ListenAddr
	cfg.ServicePort, err = extractPort(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to extract port from AUCTION_SERVICE_LISTEN_ADDR '%s': %w", cfg.ListenAddr, err)
	}

	return cfg, nil
}

func getString(envKey, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return defaultVal
}

// splitList parses a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper function to parse duration from environment variable
func getDuration(envKey string, defaultVal time.Duration) (time.Duration, error) {
	valStr := os.Getenv(envKey)
	if valStr == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format for %s: %w", envKey, err)
	}
	return d, nil
}

// extractPort extracts the numeric port from a listen address (e.g., ":8083" -> 8083, "0.0.0.0:8083" -> 8083)
func extractPort(listenAddr string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		// If SplitHostPort fails, check if ListenAddr is just a port (e.g., ":8083")
		if strings.HasPrefix(listenAddr, ":") {
			portStr = strings.TrimPrefix(listenAddr, ":")
		} else {
			return 0, fmt.Errorf("invalid ListenAddr format for port extraction: %w", err)
		}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number '%s': %w", portStr, err)
	}
	return port, nil
}
