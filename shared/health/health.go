// shared/health/health.go
package health

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/gorilla/mux"
)

const checkTimeout = 3 * time.Second

// Status represents a health check result.
type Status struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// Checker is a named dependency probe, e.g. a MongoDB ping.
type Checker struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler serves /healthz and /readyz.
type Handler struct {
	mu       sync.RWMutex
	ready    bool
	checkers []Checker
	logger   *log.Logger
	now      func() time.Time
}

func NewHandler(logger *log.Logger, checkers ...Checker) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{checkers: checkers, logger: logger, now: time.Now}
}

// SetReady flips readiness. The service is not ready until startup finishes and stops
// being ready as soon as shutdown begins.
func (h *Handler) SetReady(ready bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = ready
}

// RegisterRoutes mounts the probes on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.LivenessHandler()).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.ReadinessHandler()).Methods(http.MethodGet)
}

// LivenessHandler returns HTTP 200 while the process is serving.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, Status{Status: "ok", Timestamp: h.timestamp()})
	}
}

// ReadinessHandler returns HTTP 200 only when ready and every checker passes.
// Failed checks are logged; the body reports them as "unavailable" without the cause.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.RLock()
		ready := h.ready
		h.mu.RUnlock()

		if !ready {
			api.WriteJSON(w, http.StatusServiceUnavailable, Status{Status: "not_ready", Timestamp: h.timestamp()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		checks := make(map[string]string, len(h.checkers))
		allOK := true
		for _, c := range h.checkers {
			if err := c.Check(ctx); err != nil {
				h.logger.Printf("WARNING: readiness check %s failed: %v", c.Name, err)
				checks[c.Name] = "unavailable"
				allOK = false
				continue
			}
			checks[c.Name] = "ok"
		}

		status, code := "ready", http.StatusOK
		if !allOK {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		api.WriteJSON(w, code, Status{Status: status, Checks: checks, Timestamp: h.timestamp()})
	}
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
