package repository

import (
	"database/sql"
	"log"
)

// UserStore resolves players and keeps their presence column up to date.
// Implements game.UserStore. Failures are logged and swallowed so the
// lobby never stalls on the database.
type UserStore struct {
	DB *sql.DB
}

func (s *UserStore) PlayerExists(username string) bool {
	var exists bool
	err := s.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		log.Printf("Error resolving player %s: %v", username, err)
		return false
	}
	return exists
}

func (s *UserStore) SetPresence(username, status string) {
	_, err := s.DB.Exec("UPDATE users SET status = $1 WHERE username = $2", status, username)
	if err != nil {
		log.Printf("Error updating presence for %s: %v", username, err)
	}
}
