// shared/cluster/picker.go
package cluster

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Ftotnem/GO-AUCTIONS/shared/registry"
	"github.com/stathat/consistent"
)

// ErrNoInstances is returned by Pick while no live instance is known.
var ErrNoInstances = errors.New("no live service instances")

// ServiceSource lists live instances of a service type. *registry.RegistryClient satisfies it.
type ServiceSource interface {
	GetActiveServices(ctx context.Context, serviceType string) (map[string]registry.ServiceInfo, error)
}

// InstancePicker maps entity keys (player or auction names) onto live instances of one
// service type with a consistent hash ring, so repeated requests for a key land on the
// same instance while membership is stable.
type InstancePicker struct {
	source         ServiceSource
	serviceType    string
	updateInterval time.Duration

	mu        sync.RWMutex // protects ring and instances
	ring      *consistent.Consistent
	instances map[string]registry.ServiceInfo

	ctx    context.Context
	cancel context.CancelFunc
}

// NewInstancePicker creates a picker with an empty ring. Call Refresh or Start to fill it.
func NewInstancePicker(source ServiceSource, serviceType string, updateInterval time.Duration) *InstancePicker {
	ctx, cancel := context.WithCancel(context.Background())
	return &InstancePicker{
		source:         source,
		serviceType:    serviceType,
		updateInterval: updateInterval,
		ring:           consistent.New(),
		instances:      make(map[string]registry.ServiceInfo),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Start refreshes the ring every update interval until Stop. Run it in a goroutine.
func (p *InstancePicker) Start() {
	ticker := time.NewTicker(p.updateInterval)
	defer ticker.Stop()

	log.Printf("InstancePicker: ring updater started for service type '%s'.", p.serviceType)
	for {
		select {
		case <-p.ctx.Done():
			log.Printf("InstancePicker: ring updater for '%s' shutting down.", p.serviceType)
			return
		case <-ticker.C:
			if err := p.Refresh(p.ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("ERROR: InstancePicker: %v", err)
			}
		}
	}
}

// Stop ends the Start loop.
func (p *InstancePicker) Stop() {
	p.cancel()
}

// Refresh reloads live instances and rebuilds the ring when the member set changed.
// Address changes for an existing member are picked up without a rebuild.
func (p *InstancePicker) Refresh(ctx context.Context) error {
	active, err := p.source.GetActiveServices(ctx, p.serviceType)
	if err != nil {
		return fmt.Errorf("failed to get active services for type '%s': %w", p.serviceType, err)
	}

	members := make([]string, 0, len(active))
	for id := range active {
		members = append(members, id)
	}
	slices.Sort(members)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.instances = active
	current := p.ring.Members()
	slices.Sort(current)
	if slices.Equal(members, current) {
		return nil
	}

	ring := consistent.New()
	for _, member := range members {
		ring.Add(member)
	}
	p.ring = ring
	log.Printf("InstancePicker: ring updated for '%s'. Active members: %v", p.serviceType, members)
	return nil
}

// Pick returns the instance responsible for key.
func (p *InstancePicker) Pick(key string) (registry.ServiceInfo, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.instances) == 0 {
		return registry.ServiceInfo{}, fmt.Errorf("%w for type %s", ErrNoInstances, p.serviceType)
	}
	id, err := p.ring.Get(key)
	if err != nil {
		return registry.ServiceInfo{}, fmt.Errorf("failed to pick instance for '%s' (type %s): %w", key, p.serviceType, err)
	}
	return p.instances[id], nil
}

// Members returns the sorted instance IDs currently on the ring.
func (p *InstancePicker) Members() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	members := p.ring.Members()
	slices.Sort(members)
	return members
}
