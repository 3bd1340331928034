package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"pamekids-api/cache"
	"pamekids-api/models"
	"pamekids-api/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultLocationLimit = 200
const maxLocationLimit = 500

// parseLocationQuery διαβάζει τα φίλτρα του χάρτη από τα query params
func parseLocationQuery(c *gin.Context) (services.LocationQuery, int64, error) {
	var query services.LocationQuery

	if raw := c.Query("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			query.Types = append(query.Types, t)
		}
	}

	if raw := c.Query("age"); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil || age < 0 || age > 18 {
			return query, 0, errors.New("age must be a number between 0 and 18")
		}
		query.Age = &age
	}

	query.Price = c.Query("price")
	// free=true είναι συντόμευση για price=free
	if raw := c.Query("free"); raw != "" {
		free, err := strconv.ParseBool(raw)
		if err != nil {
			return query, 0, errors.New("free must be true or false")
		}
		if free {
			query.Price = "free"
		}
	}

	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return query, 0, errors.New("featured must be true or false")
		}
		query.Featured = &featured
	}

	query.Keyword = strings.TrimSpace(c.Query("q"))

	// τα όρια του ορατού χάρτη — ή και τα τέσσερα ή κανένα
	boundKeys := []string{"sw_lat", "sw_lng", "ne_lat", "ne_lng"}
	given := 0
	values := make([]float64, 4)
	for i, key := range boundKeys {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return query, 0, errors.New(key + " must be a number")
		}
		values[i] = v
		given++
	}
	if given > 0 && given < 4 {
		return query, 0, errors.New("all four bounds parameters are required (sw_lat, sw_lng, ne_lat, ne_lng)")
	}
	if given == 4 {
		query.Bounds = &services.Bounds{SWLat: values[0], SWLng: values[1], NELat: values[2], NELng: values[3]}
	}

	limit := int64(defaultLocationLimit)
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return query, 0, errors.New("limit must be a positive number")
		}
		if v > maxLocationLimit {
			v = maxLocationLimit
		}
		limit = v
	}

	return query, limit, nil
}

func isEmptyQuery(q services.LocationQuery) bool {
	return len(q.Types) == 0 && q.Age == nil && q.Price == "" &&
		q.Featured == nil && q.Keyword == "" && q.Bounds == nil
}

// GetLocations είναι το βασικό listing του χάρτη
func GetLocations(c *gin.Context) {
	query, limit, err := parseLocationQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// το αφιλτράριστο listing το σερβίρουμε από το cache όταν γίνεται
	cacheable := isEmptyQuery(query) && limit == defaultLocationLimit
	if cacheable {
		cached := []models.Location{}
		if cache.GetJSON(c.Request.Context(), cache.LocationListKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	locations, err := models.GetLocations(services.BuildLocationFilter(query), limit)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης σημείων:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load locations"})
		return
	}

	if cacheable {
		cache.SetJSON(c.Request.Context(), cache.LocationListKey, locations, cache.LocationListTTL)
	}

	c.JSON(http.StatusOK, locations)
}

// GetLocation επιστρέφει ένα σημείο με ObjectID ή Google place_id
func GetLocation(c *gin.Context) {
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

	c.JSON(http.StatusOK, location)
}

// GetNearbyLocations — σημεία κοντά στον χρήστη, ταξινομημένα κατά απόσταση
func GetNearbyLocations(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat or lng out of range"})
		return
	}

	radius := 5.0
	if raw := c.Query("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "radius must be between 0 and 50 km"})
			return
		}
		radius = v
	}

	// πρώτα χοντρικό φίλτρο με bounding box, μετά ακριβής απόσταση
	box := services.BoundingBox(lat, lng, radius)
	locations, err := models.GetLocations(services.BuildLocationFilter(services.LocationQuery{Bounds: &box}), 0)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης σημείων:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load locations"})
		return
	}

	type nearbyLocation struct {
		models.Location
		DistanceKm float64 `json:"distance_km"`
	}

	results := []nearbyLocation{}
	for _, loc := range locations {
		d := services.Haversine(lat, lng, loc.Coordinates.Lat, loc.Coordinates.Lng)
		if d <= radius {
			results = append(results, nearbyLocation{Location: loc, DistanceKm: math.Round(d*100) / 100})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].DistanceKm < results[j].DistanceKm })

	c.JSON(http.StatusOK, results)
}

// CreateLocation — ο διαχειριστής προσθέτει σημείο στον χάρτη
func CreateLocation(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := models.ValidateLocation(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newLocation, err := models.AddLocation(location)
	if err == models.ErrDuplicatePlace {
		c.JSON(http.StatusConflict, gin.H{"error": "A location with this place_id already exists"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία αποθήκευσης σημείου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save location"})
		return
	}

	cache.Delete(c.Request.Context(), cache.LocationListKey)
	c.JSON(http.StatusCreated, newLocation)
}

// UpdateLocation ενημερώνει σημείο
func UpdateLocation(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := models.ValidateLocation(&location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := models.UpdateLocation(id, location)
	if err == models.ErrDuplicatePlace {
		c.JSON(http.StatusConflict, gin.H{"error": "A location with this place_id already exists"})
		return
	}
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία ενημέρωσης σημείου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location"})
		return
	}

	cache.Delete(c.Request.Context(), cache.LocationListKey)
	c.JSON(http.StatusOK, updated)
}

// DeleteLocation σβήνει σημείο από τον χάρτη
func DeleteLocation(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	err := models.DeleteLocation(id)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία διαγραφής σημείου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	cache.Delete(c.Request.Context(), cache.LocationListKey)
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}
