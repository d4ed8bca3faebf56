package models

import "time"

// MatchResult is the full result document stored in MongoDB.
type MatchResult struct {
	MatchID      string    `bson:"matchId" json:"match_id"`
	Player1      string    `bson:"player1" json:"player1"`
	Player2      string    `bson:"player2" json:"player2"`
	Player1Score int       `bson:"player1Score" json:"player1_score"`
	Player2Score int       `bson:"player2Score" json:"player2_score"`
	Ranked       bool      `bson:"ranked" json:"ranked"`
	FinishedAt   time.Time `bson:"finishedAt" json:"finished_at"`
}

// Match is the summary row kept in PostgreSQL for history queries.
type Match struct {
	ID         string    `json:"id"`
	Players    []string  `json:"players"`
	Scores     []int64   `json:"scores"`
	Ranked     bool      `json:"ranked"`
	FinishedAt time.Time `json:"finished_at"`
}
