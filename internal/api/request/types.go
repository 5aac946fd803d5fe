package request

// CreatePlayerRequest is the request body for creating (or fetching) a player
type CreatePlayerRequest struct {
	DisplayName string `json:"display_name"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	PlayerID string `json:"player_id"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	PlayerID string `json:"player_id"`
}

// StartGameRequest is the request body for starting a game in a room
type StartGameRequest struct {
	PlayerID string `json:"player_id"`
}

// PurchaseRequest is the request body for buying the current item
type PurchaseRequest struct {
	PlayerID string `json:"player_id"`
}

// BuyJokerRequest is the request body for buying the joker
type BuyJokerRequest struct {
	PlayerID string `json:"player_id"`
	Value    int    `json:"value"`
}
