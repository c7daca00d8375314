// shared/service/auctionclient.go
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/Ftotnem/GO-AUCTIONS/shared/cluster"
	"github.com/Ftotnem/GO-AUCTIONS/shared/models"
)

// AuctionServiceType is the name the auction service registers under.
const AuctionServiceType = "auction-service"

// AuctionServiceClient is a client for the Auction Service.
// Every call resolves an *api.Client for the entity it touches, so a discovered client
// can route all requests about one name to the same instance.
type AuctionServiceClient struct {
	resolve func(key string) (*api.Client, error)
}

// NewAuctionClient creates a client bound to one base URL.
func NewAuctionClient(baseURL string) *AuctionServiceClient {
	apiClient := api.NewClient(baseURL, api.NewDefaultHTTPClient())
	return &AuctionServiceClient{
		resolve: func(string) (*api.Client, error) { return apiClient, nil },
	}
}

// NewDiscoveredAuctionClient creates a client that asks picker for the instance owning each
// entity name. List calls are keyed by the collection path.
func NewDiscoveredAuctionClient(picker *cluster.InstancePicker) *AuctionServiceClient {
	httpClient := api.NewDefaultHTTPClient()
	return &AuctionServiceClient{
		resolve: func(key string) (*api.Client, error) {
			info, err := picker.Pick(key)
			if err != nil {
				return nil, err
			}
			return api.NewClient(info.URL(), httpClient), nil
		},
	}
}

// ListParams are optional pagination bounds; zero values are left to the server defaults.
type ListParams struct {
	Skip  int64
	Limit int64
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.FormatInt(p.Skip, 10))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.FormatInt(p.Limit, 10))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func entityPath(collection, name string) string {
	return fmt.Sprintf("/%s/%s", collection, url.PathEscape(name))
}

// do resolves the instance for key and runs one request against it.
func (c *AuctionServiceClient) do(ctx context.Context, key, method, path string, body, result interface{}) error {
	apiClient, err := c.resolve(key)
	if err != nil {
		return fmt.Errorf("failed to resolve auction service for %s %s: %w", method, path, err)
	}
	switch method {
	case http.MethodGet:
		return apiClient.Get(ctx, path, result)
	case http.MethodPost:
		return apiClient.Post(ctx, path, body, result)
	case http.MethodPatch:
		return apiClient.Patch(ctx, path, body, result)
	case http.MethodDelete:
		return apiClient.Delete(ctx, path, result)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}
}

// --- Players ---

// CreatePlayer calls POST /players. A taken name yields an error matching api.ErrConflict.
func (c *AuctionServiceClient) CreatePlayer(ctx context.Context, player *models.Player) (*models.Player, error) {
	created := &models.Player{}
	if err := c.do(ctx, player.Name, http.MethodPost, "/players", player, created); err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", player.Name, err)
	}
	return created, nil
}

// GetPlayer calls GET /players/{name}. A missing player yields an error matching api.ErrNotFound.
func (c *AuctionServiceClient) GetPlayer(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{}
	if err := c.do(ctx, name, http.MethodGet, entityPath("players", name), nil, player); err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", name, err)
	}
	return player, nil
}

// ListPlayers calls GET /players.
func (c *AuctionServiceClient) ListPlayers(ctx context.Context, params ListParams) ([]models.Player, error) {
	var players []models.Player
	if err := c.do(ctx, "/players", http.MethodGet, "/players"+params.query(), nil, &players); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// UpdatePlayer calls PATCH /players/{name}.
func (c *AuctionServiceClient) UpdatePlayer(ctx context.Context, name string, patch *models.PlayerPatch) (*models.Player, error) {
	player := &models.Player{}
	if err := c.do(ctx, name, http.MethodPatch, entityPath("players", name), patch, player); err != nil {
		return nil, fmt.Errorf("failed to update player %s: %w", name, err)
	}
	return player, nil
}

// DeletePlayer calls DELETE /players/{name} and returns the removed player.
func (c *AuctionServiceClient) DeletePlayer(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{}
	if err := c.do(ctx, name, http.MethodDelete, entityPath("players", name), nil, player); err != nil {
		return nil, fmt.Errorf("failed to delete player %s: %w", name, err)
	}
	return player, nil
}

// --- Auctions ---

// CreateAuction calls POST /auctions.
func (c *AuctionServiceClient) CreateAuction(ctx context.Context, auction *models.Auction) (*models.Auction, error) {
	created := &models.Auction{}
	if err := c.do(ctx, auction.Name, http.MethodPost, "/auctions", auction, created); err != nil {
		return nil, fmt.Errorf("failed to create auction %s: %w", auction.Name, err)
	}
	return created, nil
}

// GetAuction calls GET /auctions/{name}.
func (c *AuctionServiceClient) GetAuction(ctx context.Context, name string) (*models.Auction, error) {
	auction := &models.Auction{}
	if err := c.do(ctx, name, http.MethodGet, entityPath("auctions", name), nil, auction); err != nil {
		return nil, fmt.Errorf("failed to get auction %s: %w", name, err)
	}
	return auction, nil
}

// ListAuctions calls GET /auctions.
func (c *AuctionServiceClient) ListAuctions(ctx context.Context, params ListParams) ([]models.Auction, error) {
	var auctions []models.Auction
	if err := c.do(ctx, "/auctions", http.MethodGet, "/auctions"+params.query(), nil, &auctions); err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	return auctions, nil
}

// UpdateAuction calls PATCH /auctions/{name}.
func (c *AuctionServiceClient) UpdateAuction(ctx context.Context, name string, patch *models.AuctionPatch) (*models.Auction, error) {
	auction := &models.Auction{}
	if err := c.do(ctx, name, http.MethodPatch, entityPath("auctions", name), patch, auction); err != nil {
		return nil, fmt.Errorf("failed to update auction %s: %w", name, err)
	}
	return auction, nil
}

// DeleteAuction calls DELETE /auctions/{name} and returns the removed auction.
func (c *AuctionServiceClient) DeleteAuction(ctx context.Context, name string) (*models.Auction, error) {
	auction := &models.Auction{}
	if err := c.do(ctx, name, http.MethodDelete, entityPath("auctions", name), nil, auction); err != nil {
		return nil, fmt.Errorf("failed to delete auction %s: %w", name, err)
	}
	return auction, nil
}
