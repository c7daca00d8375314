package models

// Player is the public representation of a player. It doubles as the creation schema:
// the validate tags are checked before a Player reaches the store.
type Player struct {
	Name  string `bson:"name" json:"name" validate:"required"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// PlayerPatch lists the fields a PATCH may change. Nil means "leave as is".
// Name is the resource key and cannot be patched.
type PlayerPatch struct {
	Notes *string `json:"notes,omitempty"`
}
