package models

import "encoding/json"

// WsMessage is the envelope for every frame on the game socket, both
// directions: {"event": "...", "data": {...}}.
type WsMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MatchmakingMessage is the payload of a "matchmaking" event.
type MatchmakingMessage struct {
	Username string `json:"username"`
	League   string `json:"league"`
}

// CancelMatchmakingMessage is the payload of a "cancel-matchmaking" event.
type CancelMatchmakingMessage struct {
	Username string `json:"username"`
}

// ChallengeMessage is the payload of a "challenge" event. Both the
// challenger and the accepting opponent send the same ID.
type ChallengeMessage struct {
	ID         string `json:"id"`
	Challenger string `json:"Challenger"`
	Opponent   string `json:"Opponent"`
}
