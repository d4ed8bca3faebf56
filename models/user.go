package models

type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Status   string `json:"status"`
}

// Presence values stored on the users table and pushed by the lobby.
const (
	StatusOnline  = "ONLINE"
	StatusOffline = "OFFLINE"
	StatusInGame  = "INGAME"
)
