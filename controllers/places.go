package controllers

import (
	"log"
	"net/http"

	"pamekids-api/jobs"
	"pamekids-api/models"
	"pamekids-api/places"
	"pamekids-api/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetLocationPlace — βαθμολογία και ωράριο από το Google Places για ένα σημείο.
// Αν το αποθηκευμένο snapshot είναι φρέσκο το σερβίρουμε όπως είναι· αλλιώς
// ξαναρωτάμε το Google και αν αποτύχει πέφτουμε στο μπαγιάτικο.
func GetLocationPlace(c *gin.Context) {
	location, err := models.GetLocationByID(c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		log.Println("Αποτυχία φόρτωσης σημείου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load location"})
		return
	}

	if location.PlaceID == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location has no linked Google place"})
		return
	}

	if services.SnapshotFresh(location.Place) {
		c.JSON(http.StatusOK, location.Place)
		return
	}

	client, err := places.FromEnv()
	if err != nil {
		// χωρίς API key σερβίρουμε ό,τι έχουμε
		if location.Place != nil {
			c.JSON(http.StatusOK, location.Place)
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Places lookups are not configured"})
		return
	}

	snap, err := services.FetchPlaceSnapshot(c.Request.Context(), client, location.PlaceID)
	if err != nil {
		if err == places.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Google place not found"})
			return
		}
		if location.Place != nil {
			c.JSON(http.StatusOK, location.Place)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reach Google Places"})
		return
	}

	if err := models.UpdatePlaceSnapshot(location.ID, snap); err != nil {
		log.Println("Αποτυχία αποθήκευσης place snapshot:", err)
	}

	c.JSON(http.StatusOK, snap)
}

// RefreshPlaces — ο διαχειριστής πυροδοτεί το refresh χωρίς να περιμένει τη νύχτα
func RefreshPlaces(c *gin.Context) {
	go jobs.RefreshPlaceSnapshots()
	c.JSON(http.StatusAccepted, gin.H{"message": "Place refresh started"})
}
