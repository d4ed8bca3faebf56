package repository

import (
	"context"
	"log"
	"time"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pongarena/pongarena-backend/config"
)

func ConnectMongoDB(cfg *config.Config) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}

	// Optional: Ping the primary
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}
	MongoDBClient = client

	log.Println("Successfully connected to MongoDB")
	return client
}

var (
	MongoDBClient *mongo.Client
)
