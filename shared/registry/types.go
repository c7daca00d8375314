// shared/registry/types.go
package registry

import (
	"fmt"
	"time"
)

// RedisRegistryHashPrefix prefixes the Redis hash holding one service type's instances:
// "services:<serviceType>", e.g. "services:auction-service".
const RedisRegistryHashPrefix = "services:"

// ServiceInfo represents the details of a registered service instance.
// This information is stored in Redis and used for service discovery.
type ServiceInfo struct {
	ServiceID   string            `json:"serviceId"`   // Unique ID for this specific instance
	ServiceType string            `json:"serviceType"` // Type of service (e.g., "auction-service")
	IP          string            `json:"ip"`          // IP address where the service is listening
	Port        int               `json:"port"`        // Port where the service is listening
	LastSeen    int64             `json:"last_seen"`   // Unix milliseconds of the latest heartbeat
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// URL is the base HTTP address of the instance.
func (si ServiceInfo) URL() string {
	return fmt.Sprintf("http://%s:%d", si.IP, si.Port)
}

// Stale reports whether the last heartbeat is older than ttl at now.
func (si ServiceInfo) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(time.UnixMilli(si.LastSeen)) > ttl
}

func hashKey(serviceType string) string {
	return RedisRegistryHashPrefix + serviceType
}
