package api

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Ftotnem/GO-AUCTIONS/auction/store"
	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/Ftotnem/GO-AUCTIONS/shared/models"
)

var errBackendDown = errors.New("connection refused: mongodb-service:27017")

// page applies skip and limit to a name-sorted key list the way the Mongo store does.
func page(names []string, opts store.ListOptions) []string {
	sort.Strings(names)
	if opts.Skip >= int64(len(names)) {
		return nil
	}
	names = names[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < int64(len(names)) {
		names = names[:opts.Limit]
	}
	return names
}

type memPlayerStore struct {
	mu      sync.Mutex
	players map[string]models.Player
	err     error
}

func newMemPlayerStore() *memPlayerStore {
	return &memPlayerStore{players: make(map[string]models.Player)}
}

func (s *memPlayerStore) CreatePlayer(_ context.Context, p *models.Player) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if _, ok := s.players[p.Name]; ok {
		return nil, api.NewAlreadyExists("Player", p.Name)
	}
	s.players[p.Name] = *p
	out := *p
	return &out, nil
}

func (s *memPlayerStore) GetPlayer(_ context.Context, name string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.players[name]
	if !ok {
		return nil, api.NewNotFound("Player", name)
	}
	return &p, nil
}

func (s *memPlayerStore) ListPlayers(_ context.Context, opts store.ListOptions) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	names := make([]string, 0, len(s.players))
	for name := range s.players {
		names = append(names, name)
	}
	out := make([]models.Player, 0)
	for _, name := range page(names, opts) {
		out = append(out, s.players[name])
	}
	return out, nil
}

func (s *memPlayerStore) UpdatePlayer(_ context.Context, name string, patch *models.PlayerPatch) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.players[name]
	if !ok {
		return nil, api.NewNotFound("Player", name)
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	s.players[name] = p
	return &p, nil
}

func (s *memPlayerStore) DeletePlayer(_ context.Context, name string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.players[name]
	if !ok {
		return nil, api.NewNotFound("Player", name)
	}
	delete(s.players, name)
	return &p, nil
}

type memAuctionStore struct {
	mu       sync.Mutex
	auctions map[string]models.Auction
}

func newMemAuctionStore() *memAuctionStore {
	return &memAuctionStore{auctions: make(map[string]models.Auction)}
}

func (s *memAuctionStore) CreateAuction(_ context.Context, a *models.Auction) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.auctions[a.Name]; ok {
		return nil, api.NewAlreadyExists("Auction", a.Name)
	}
	stored := *a
	if stored.Players == nil {
		stored.Players = []models.Bid{}
	}
	s.auctions[a.Name] = stored
	return &stored, nil
}

func (s *memAuctionStore) GetAuction(_ context.Context, name string) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[name]
	if !ok {
		return nil, api.NewNotFound("Auction", name)
	}
	return &a, nil
}

func (s *memAuctionStore) ListAuctions(_ context.Context, opts store.ListOptions) ([]models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.auctions))
	for name := range s.auctions {
		names = append(names, name)
	}
	out := make([]models.Auction, 0)
	for _, name := range page(names, opts) {
		out = append(out, s.auctions[name])
	}
	return out, nil
}

func (s *memAuctionStore) UpdateAuction(_ context.Context, name string, patch *models.AuctionPatch) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[name]
	if !ok {
		return nil, api.NewNotFound("Auction", name)
	}
	if patch.Players != nil {
		a.Players = *patch.Players
	}
	if patch.MinimumBid != nil {
		a.MinimumBid = patch.MinimumBid
	}
	if patch.NumberOfBlindBids != nil {
		a.NumberOfBlindBids = patch.NumberOfBlindBids
	}
	s.auctions[name] = a
	return &a, nil
}

func (s *memAuctionStore) DeleteAuction(_ context.Context, name string) (*models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[name]
	if !ok {
		return nil, api.NewNotFound("Auction", name)
	}
	delete(s.auctions, name)
	return &a, nil
}
