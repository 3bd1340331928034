package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client global σύνδεση MongoDB
var Client *mongo.Client

var dbName = "pamekids_db"

// Collections για τα δεδομένα του χάρτη και του blog
var LocationCollection *mongo.Collection
var BlogCollection *mongo.Collection

// InitDB ανοίγει τη σύνδεση με τη MongoDB
func InitDB() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI not set in .env")
	}
	if name := os.Getenv("MONGODB_DB"); name != "" {
		dbName = name
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	// ping για να σιγουρευτούμε ότι απαντάει
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Client = client
	LocationCollection = client.Database(dbName).Collection("locations")
	BlogCollection = client.Database(dbName).Collection("blog_posts")

	log.Println("Connected to MongoDB")
}

// DisconnectDB κλείνει τη σύνδεση
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Client.Disconnect(ctx)
	if err != nil {
		log.Println("Failed to disconnect MongoDB:", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// OpenCollection επιστρέφει collection με βάση το όνομα
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(dbName).Collection(collectionName)
}
