package models

// Bid is one entry in an auction's ordered player list.
// Player holds the referenced player's name; its existence is not checked.
type Bid struct {
	Player string   `bson:"player" json:"player" validate:"required"`
	Bid    *float64 `bson:"bid,omitempty" json:"bid,omitempty" validate:"required"`
	Buyer  string   `bson:"buyer,omitempty" json:"buyer,omitempty"`
}

// Auction is the public representation of an auction and its creation schema.
type Auction struct {
	Name              string   `bson:"name" json:"name" validate:"required"`
	Players           []Bid    `bson:"players" json:"players" validate:"dive"`
	MinimumBid        *float64 `bson:"minimumBid" json:"minimumBid" validate:"required"`
	NumberOfBlindBids *int     `bson:"numberOfBlindBids" json:"numberOfBlindBids" validate:"required"`
}

// AuctionPatch lists the fields a PATCH may change. Nil means "leave as is".
type AuctionPatch struct {
	Players           *[]Bid   `json:"players,omitempty" validate:"omitempty,dive"`
	MinimumBid        *float64 `json:"minimumBid,omitempty"`
	NumberOfBlindBids *int     `json:"numberOfBlindBids,omitempty"`
}
