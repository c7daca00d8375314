// auction/api/player_handler.go
package api

import (
	"net/http"

	"github.com/Ftotnem/GO-AUCTIONS/shared/api"
	"github.com/gorilla/mux"
)

// ListPlayersHandler returns players sorted by name.
// GET /players?skip=&limit=
func (h *AuctionAPIHandlers) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	players, err := h.Players.ListPlayers(ctx, opts)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, players)
}

// CreatePlayerHandler handles requests to create a new player.
// POST /players
func (h *AuctionAPIHandlers) CreatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	player, err := h.Validator.DecodeNewPlayer(r.Body)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	created, err := h.Players.CreatePlayer(ctx, player)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
	h.Logger.Printf("INFO: Player %s created.", created.Name)
}

// GetPlayerHandler handles requests to retrieve a player by name.
// GET /players/{name}
func (h *AuctionAPIHandlers) GetPlayerHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ctx, cancel := h.requestContext(r)
	defer cancel()

	player, err := h.Players.GetPlayer(ctx, name)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, player)
}

// UpdatePlayerHandler applies a partial update. Only notes may change.
// PATCH /players/{name}
func (h *AuctionAPIHandlers) UpdatePlayerHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	patch, err := h.Validator.DecodePlayerUpdate(r.Body)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	updated, err := h.Players.UpdatePlayer(ctx, name, patch)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, updated)
	h.Logger.Printf("INFO: Player %s updated.", name)
}

// DeletePlayerHandler removes a player and echoes it back.
// DELETE /players/{name}
func (h *AuctionAPIHandlers) DeletePlayerHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	ctx, cancel := h.requestContext(r)
	defer cancel()

	deleted, err := h.Players.DeletePlayer(ctx, name)
	if err != nil {
		api.WriteAPIError(w, h.Logger, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, deleted)
	h.Logger.Printf("INFO: Player %s deleted.", name)
}
