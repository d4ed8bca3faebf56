package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pongarena/pongarena-backend/game"
	"github.com/pongarena/pongarena-backend/models"
	"github.com/pongarena/pongarena-backend/responses"
	"github.com/pongarena/pongarena-backend/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// lobby is the matchmaking coordinator every connection talks to. Set once
// by NewRouter before the server starts.
var lobby *game.Lobby

func WsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tokenStr := vars["token"]

	// Validate the token
	claims, err := ValidateToken(tokenStr)
	if err != nil {
		log.Println(err)
		utils.HandleError(w, responses.UnauthorizedError{Msg: "Error validating token."})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	connection := &Connection{
		id:       uuid.New().String(),
		ws:       conn,
		send:     make(chan models.WsMessage, 256),
		username: claims.Username,
	}

	log.Printf("User %s connected (connection %s)", claims.Username, connection.id)

	go connection.writePump()
	connection.readPump()
}

// processMessage dispatches one inbound frame to the lobby. Malformed or
// unknown frames are protocol noise and get dropped without a reply.
func processMessage(c *Connection, rawMessage []byte) {
	var msg models.WsMessage
	if err := json.Unmarshal(rawMessage, &msg); err != nil {
		log.Printf("error unmarshalling message from %s: %v", c.username, err)
		return
	}

	switch msg.Event {
	case "register":
		var username string
		if err := json.Unmarshal(msg.Data, &username); err != nil {
			return
		}
		lobby.Register(username, c)
	case "matchmaking":
		var m models.MatchmakingMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			return
		}
		lobby.Enqueue(m.Username, m.League)
	case "cancel-matchmaking":
		var m models.CancelMatchmakingMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			return
		}
		lobby.CancelQueue(m.Username)
	case "challenge":
		var m models.ChallengeMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			return
		}
		lobby.Challenge(m.ID, m.Challenger, m.Opponent)
	case "move-left":
		var username string
		if err := json.Unmarshal(msg.Data, &username); err != nil {
			return
		}
		lobby.HandleMove(username, -1)
	case "move-right":
		var username string
		if err := json.Unmarshal(msg.Data, &username); err != nil {
			return
		}
		lobby.HandleMove(username, +1)
	case "join-game":
		lobby.JoinPractice(c, c.username)
	default:
		log.Printf("Unhandled event: %s", msg.Event)
	}
}
