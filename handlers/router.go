package handlers

import (
	"github.com/gorilla/mux"
	"github.com/pongarena/pongarena-backend/game"
	"github.com/pongarena/pongarena-backend/middleware"
)

func NewRouter(l *game.Lobby) *mux.Router {
	lobby = l

	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/register", Register).Methods("POST")
	r.HandleFunc("/api/login", Login).Methods("POST")
	r.HandleFunc("/api/refresh/token", RefreshToken).Methods("POST")
	r.HandleFunc("/ws/{token}", WsHandler)

	// Secured routes
	secured := r.PathPrefix("/api").Subrouter()
	secured.Use(middleware.JWTValidationMiddleware)
	secured.HandleFunc("/matches", FetchUserMatches).Methods("GET")
	secured.HandleFunc("/match/{matchID}", FetchMatch).Methods("GET")
	secured.HandleFunc("/logout", Logout).Methods("POST")
	return r
}
