package main

import (
	"log"
	"os"

	"pamekids-api/cache"
	db "pamekids-api/database"
	"pamekids-api/filestore"
	"pamekids-api/gcs"
	"pamekids-api/jobs"
	"pamekids-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Φόρτωση του .env
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning Error loading .env file:", err)
	}

	// Τα flat αρχεία (συνδρομητές, αναφορές)
	if err := filestore.Init(os.Getenv("DATA_DIR")); err != nil {
		log.Fatal("Αποτυχία δημιουργίας του data directory:", err)
	}

	// Σύνδεση με MongoDB
	db.InitDB()
	defer db.DisconnectDB() // αποσύνδεση όταν κλείσει το πρόγραμμα

	// Cloud Storage για τις φωτογραφίες
	gcs.InitGCS()
	defer gcs.Close()

	// Redis cache — προαιρετικό, χωρίς αυτό απλά δουλεύουμε πιο αργά
	cache.Init()
	defer cache.Close()

	// Προγραμματισμένα jobs (refresh snapshots, εβδομαδιαίο digest)
	jobs.Start()
	defer jobs.Stop()

	// Ρύθμιση του Gin router
	r := gin.Default()

	// Routes
	routes.SetupRoutes(r)

	// Εκκίνηση server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
