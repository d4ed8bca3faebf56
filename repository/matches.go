package repository

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"github.com/pongarena/pongarena-backend/models"
)

// MatchStore persists finished match results: the full document goes to
// MongoDB, a summary row to PostgreSQL for history queries. Implements
// game.MatchRecorder.
type MatchStore struct {
	DB    *sql.DB
	Mongo *mongo.Client
}

func (s *MatchStore) RecordMatchResult(player1, player2 string, ranked bool, score1, score2 int) {
	result := models.MatchResult{
		MatchID:      uuid.New().String(),
		Player1:      player1,
		Player2:      player2,
		Player1Score: score1,
		Player2Score: score2,
		Ranked:       ranked,
		FinishedAt:   time.Now().UTC(),
	}

	collection := s.Mongo.Database("pongarena").Collection("matches")
	if _, err := collection.InsertOne(context.Background(), result); err != nil {
		log.Printf("Failed to insert match result into MongoDB: %v", err)
	}

	_, err := s.DB.Exec("INSERT INTO matches (id, players, scores, ranked, finished_at) VALUES ($1, $2, $3, $4, $5)",
		result.MatchID,
		pq.Array([]string{player1, player2}),
		pq.Array([]int64{int64(score1), int64(score2)}),
		ranked,
		result.FinishedAt)
	if err != nil {
		log.Printf("Failed to insert match summary into PostgreSQL: %v", err)
		return
	}

	log.Printf("Match result saved with ID %s", result.MatchID)
}
