package handlers

import (
	"net/http"
	"context"
	"log"
	"github.com/gorilla/mux"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"github.com/lib/pq"
	"github.com/pongarena/pongarena-backend/common"
	"github.com/pongarena/pongarena-backend/models"
	"github.com/pongarena/pongarena-backend/repository"
	"github.com/pongarena/pongarena-backend/responses"
	"github.com/pongarena/pongarena-backend/utils"
)

// FetchUserMatches returns the caller's match history from the summary
// rows in PostgreSQL.
func FetchUserMatches(w http.ResponseWriter, r *http.Request) {
	authInfo, ok := r.Context().Value(common.AuthInfoKey).(*models.CustomClaims)
	if !ok {
		utils.HandleError(w, responses.InternalServerError{Msg: "Error processing request."})
		return
	}

	username := authInfo.Username
	db := repository.PostgreSQLDB

	var matches []models.Match
	query := "SELECT id, players, scores, ranked, finished_at FROM matches WHERE $1 = ANY(players) ORDER BY finished_at DESC"
	rows, err := db.Query(query, username)

	if err != nil {
		log.Printf("Error fetching matches: %v", err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Failed to fetch user matches."})
		return
	}
	defer rows.Close()

	for rows.Next() {
		var match models.Match
		err := rows.Scan(&match.ID, pq.Array(&match.Players), pq.Array(&match.Scores), &match.Ranked, &match.FinishedAt)
		if err != nil {
			utils.HandleError(w, responses.InternalServerError{Msg: "Error processing user matches."})
			return
		}
		matches = append(matches, match)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error iterating match rows: %v", err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Error processing user matches."})
		return
	}

	if len(matches) == 0 {
		utils.HandleSuccess(w, models.SuccessResponse([]models.Match{})) // Return an empty array for consistency
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(matches))
}

// FetchMatch returns one full match result document from MongoDB.
func FetchMatch(w http.ResponseWriter, r *http.Request) {
	authInfo, ok := r.Context().Value(common.AuthInfoKey).(*models.CustomClaims)
	if !ok {
		utils.HandleError(w, responses.InternalServerError{Msg: "Error processing request."})
		return
	}

	vars := mux.Vars(r)
	matchID := vars["matchID"]
	if matchID == "" {
		utils.HandleError(w, responses.BadRequestError{Msg: "matchID is required."})
		return
	}

	collection := repository.MongoDBClient.Database("pongarena").Collection("matches")
	var result models.MatchResult
	err := collection.FindOne(context.Background(), bson.M{"matchId": matchID}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(w, responses.NotFoundError{Msg: "Match not found."})
			return
		}
		log.Printf("Error fetching match: %v", err)
		utils.HandleError(w, responses.InternalServerError{Msg: "Error fetching match."})
		return
	}

	// Only participants may read the full result
	if result.Player1 != authInfo.Username && result.Player2 != authInfo.Username {
		utils.HandleError(w, responses.BadRequestError{Msg: "User is not part of the match."})
		return
	}

	utils.HandleSuccess(w, models.SuccessResponse(result))
}
