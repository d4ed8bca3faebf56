package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pongarena/pongarena-backend/config"
	"github.com/pongarena/pongarena-backend/game"
	"github.com/pongarena/pongarena-backend/handlers"
	"github.com/pongarena/pongarena-backend/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.LoadConfig()
	db := repository.ConnectToPostgreSQL(cfg)
	mongoClient := repository.ConnectMongoDB(cfg)

	users := &repository.UserStore{DB: db}
	recorder := &repository.MatchStore{DB: db, Mongo: mongoClient}
	lobby := game.NewLobby(users, recorder, game.DefaultConfig())

	r := handlers.NewRouter(lobby)

	log.Printf("Server running on %s", cfg.ServerAddr)
	log.Fatal(http.ListenAndServe(cfg.ServerAddr, r))
}
