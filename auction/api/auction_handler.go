// auction/api/auction_handler.go
package api

import (
	"net/http"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/gorilla/mux"
)

// ListAuctionsHandler returns auctions sorted by name.
// GET /auctions?skip=&limit=
func (h *AuctionAPIHandlers) ListAuctionsHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	auctions, err := h.Auctions.ListAuctions(ctx, opts)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, auctions)
}

// CreateAuctionHandler handles requests to create a new auction.
// POST /auctions
func (h *AuctionAPIHandlers) CreateAuctionHandler(w http.ResponseWriter, r *http.Request) {
	auction, err := h.Validator.DecodeNewAuction(r.Body)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	created, err := h.Auctions.CreateAuction(ctx, auction)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
	h.Logger.Printf("INFO: Auction %s created.", created.Name)
}

// GetAuctionHandler handles requests to retrieve an auction by name.
// GET /auctions/{name}
func (h *AuctionAPIHandlers) GetAuctionHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ctx, cancel := h.requestContext(r)
	defer cancel()

	auction, err := h.Auctions.GetAuction(ctx, name)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, auction)
}

// UpdateAuctionHandler applies a partial update to players, minimumBid or numberOfBlindBids.
// PATCH /auctions/{name}
func (h *AuctionAPIHandlers) UpdateAuctionHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	patch, err := h.Validator.DecodeAuctionUpdate(r.Body)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	updated, err := h.Auctions.UpdateAuction(ctx, name, patch)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
	h.Logger.Printf("INFO: Auction %s updated.", name)
}

// DeleteAuctionHandler removes an auction and echoes it back.
// DELETE /auctions/{name}
func (h *AuctionAPIHandlers) DeleteAuctionHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ctx, cancel := h.requestContext(r)
	defer cancel()

	deleted, err := h.Auctions.DeleteAuction(ctx, name)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, deleted)
	h.Logger.Printf("INFO: Auction %s deleted.", name)
}
