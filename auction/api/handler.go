// auction/api/handler.go
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Ftotnem/GO-AUCTIONS/auction/schema"
	"github.com/Ftotnem/GO-AUCTIONS/auction/store"
	"github.com/Ftotnem/GO-AUCTIONS/shared/models"
	"github.com/gorilla/mux"
)

// DefaultRequestTimeout bounds every store call made on behalf of a request.
const DefaultRequestTimeout = 5 * time.Second

// PlayerStore is the persistence surface the player handlers need.
type PlayerStore interface {
	CreatePlayer(ctx context.Context, player *models.Player) (*models.Player, error)
	GetPlayer(ctx context.Context, name string) (*models.Player, error)
	ListPlayers(ctx context.Context, opts store.ListOptions) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, name string, patch *models.PlayerPatch) (*models.Player, error)
	DeletePlayer(ctx context.Context, name string) (*models.Player, error)
}

// AuctionStore is the persistence surface the auction handlers need.
type AuctionStore interface {
	CreateAuction(ctx context.Context, auction *models.Auction) (*models.Auction, error)
	GetAuction(ctx context.Context, name string) (*models.Auction, error)
	ListAuctions(ctx context.Context, opts store.ListOptions) ([]models.Auction, error)
	UpdateAuction(ctx context.Context, name string, patch *models.AuctionPatch) (*models.Auction, error)
	DeleteAuction(ctx context.Context, name string) (*models.Auction, error)
}

// AuctionAPIHandlers holds the stores and request decoding used by the HTTP layer.
type AuctionAPIHandlers struct {
	Players        PlayerStore
	Auctions       AuctionStore
	Validator      *schema.Validator
	Logger         *log.Logger
	RequestTimeout time.Duration
}

// NewAuctionAPIHandlers is the constructor for the API handlers.
func NewAuctionAPIHandlers(players PlayerStore, auctions AuctionStore, v *schema.Validator, logger *log.Logger) *AuctionAPIHandlers {
	if logger == nil {
		logger = log.Default()
	}
	return &AuctionAPIHandlers{
		Players:        players,
		Auctions:       auctions,
		Validator:      v,
		Logger:         logger,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// RegisterRoutes mounts the player and auction resources on r.
func (h *AuctionAPIHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/players", h.ListPlayersHandler).Methods(http.MethodGet)
	r.HandleFunc("/players", h.CreatePlayerHandler).Methods(http.MethodPost)
	r.HandleFunc("/players/{name}", h.GetPlayerHandler).Methods(http.MethodGet)
	r.HandleFunc("/players/{name}", h.UpdatePlayerHandler).Methods(http.MethodPatch)
	r.HandleFunc("/players/{name}", h.DeletePlayerHandler).Methods(http.MethodDelete)

	r.HandleFunc("/auctions", h.ListAuctionsHandler).Methods(http.MethodGet)
	r.HandleFunc("/auctions", h.CreateAuctionHandler).Methods(http.MethodPost)
	r.HandleFunc("/auctions/{name}", h.GetAuctionHandler).Methods(http.MethodGet)
	r.HandleFunc("/auctions/{name}", h.UpdateAuctionHandler).Methods(http.MethodPatch)
	r.HandleFunc("/auctions/{name}", h.DeleteAuctionHandler).Methods(http.MethodDelete)
}

func (h *AuctionAPIHandlers) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := h.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(r.Context(), timeout)
}

// listOptions builds store options from the query string. Unknown query parameters are ignored.
func listOptions(r *http.Request) (store.ListOptions, error) {
	skip, limit, err := parsePagination(r)
	if err != nil {
		return store.ListOptions{}, err
	}
	return store.ListOptions{Skip: skip, Limit: limit}, nil
}
