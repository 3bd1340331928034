package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	db "pamekids-api/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Οι κατηγορίες δραστηριοτήτων που δείχνει ο χάρτης
var AllowedTypes = []string{
	"indoor-play",
	"outdoor-play",
	"sports",
	"arts",
	"music",
	"education",
	"entertainment",
}

// free = δωρεάν είσοδος
var AllowedPriceRanges = []string{"free", "low", "medium", "high"}

var ErrDuplicatePlace = errors.New("location with this place_id already exists")

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type AgeRange struct {
	Min int `json:"min" bson:"min"`
	Max int `json:"max" bson:"max"`
}

// PlaceSnapshot είναι τα στοιχεία που τραβάμε από το Google Places και
// κρατάμε πάνω στο document για να μην τα ζητάμε σε κάθε request
type PlaceSnapshot struct {
	Rating           float64   `json:"rating" bson:"rating"`
	UserRatingsTotal int       `json:"user_ratings_total" bson:"user_ratings_total"`
	OpeningHours     []string  `json:"opening_hours,omitempty" bson:"opening_hours,omitempty"`
	OpenNow          *bool     `json:"open_now,omitempty" bson:"open_now,omitempty"`
	FetchedAt        time.Time `json:"fetched_at" bson:"fetched_at"`
}

// Location είναι ένα σημείο δραστηριότητας πάνω στον χάρτη
type Location struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PlaceID     string             `json:"place_id,omitempty" bson:"place_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Coordinates Coordinates        `json:"coordinates" bson:"coordinates"`
	Address     string             `json:"address,omitempty" bson:"address,omitempty"`
	Types       []string           `json:"types" bson:"types"`
	PrimaryType string             `json:"primary_type" bson:"primary_type"`
	AgeRange    AgeRange           `json:"age_range" bson:"age_range"`
	PriceRange  string             `json:"price_range" bson:"price_range"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Images      []string           `json:"images" bson:"images"`
	Featured    bool               `json:"featured" bson:"featured"`
	Place       *PlaceSnapshot     `json:"place,omitempty" bson:"place,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

func containsString(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// ValidateLocation ελέγχει τους κανόνες πριν γράψουμε οτιδήποτε
func ValidateLocation(loc *Location) error {
	if loc.Name == "" {
		return errors.New("name is required")
	}
	if loc.Coordinates.Lat < -90 || loc.Coordinates.Lat > 90 {
		return errors.New("latitude out of range")
	}
	if loc.Coordinates.Lng < -180 || loc.Coordinates.Lng > 180 {
		return errors.New("longitude out of range")
	}
	if len(loc.Types) == 0 {
		return errors.New("at least one activity type is required")
	}
	for _, t := range loc.Types {
		if !containsString(AllowedTypes, t) {
			return fmt.Errorf("unknown activity type: %s", t)
		}
	}
	// το primary type πρέπει να είναι ένα από τα types
	if loc.PrimaryType == "" {
		loc.PrimaryType = loc.Types[0]
	} else if !containsString(loc.Types, loc.PrimaryType) {
		return errors.New("primary_type must be one of types")
	}
	if loc.AgeRange.Min < 0 || loc.AgeRange.Max > 18 || loc.AgeRange.Min > loc.AgeRange.Max {
		return errors.New("age_range must be within 0-18 with min <= max")
	}
	if loc.PriceRange == "" {
		loc.PriceRange = "free"
	} else if !containsString(AllowedPriceRanges, loc.PriceRange) {
		return fmt.Errorf("unknown price_range: %s", loc.PriceRange)
	}
	return nil
}

// AddLocation γράφει νέο σημείο στη βάση
func AddLocation(loc Location) (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// δεν θέλουμε δύο σημεία με το ίδιο place_id
	if loc.PlaceID != "" {
		var existing Location
		err := db.LocationCollection.FindOne(ctx, bson.M{"place_id": loc.PlaceID}).Decode(&existing)
		if err == nil {
			return Location{}, ErrDuplicatePlace
		}
	}

	loc.ID = primitive.NewObjectID()
	if loc.Images == nil {
		loc.Images = []string{}
	}
	loc.CreatedAt = time.Now()
	loc.UpdatedAt = loc.CreatedAt

	_, err := db.LocationCollection.InsertOne(ctx, loc)
	if err != nil {
		return Location{}, err
	}
	return loc, nil
}

// GetLocations φέρνει σημεία με το φίλτρο που έχτισε το service layer
func GetLocations(filter bson.M, limit int64) ([]Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "featured", Value: -1}, {Key: "name", Value: 1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := db.LocationCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	locations := []Location{}
	if err = cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// GetLocationByID ψάχνει με ObjectID και μετά με place_id
func GetLocationByID(id string) (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var location Location

	if objID, err := primitive.ObjectIDFromHex(id); err == nil {
		err = db.LocationCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&location)
		if err == nil {
			return location, nil
		}
		if err != mongo.ErrNoDocuments {
			return Location{}, err
		}
	}

	// ίσως μας έδωσαν Google place_id
	err := db.LocationCollection.FindOne(ctx, bson.M{"place_id": id}).Decode(&location)
	if err != nil {
		return Location{}, err
	}
	return location, nil
}

// placeConflictFilter βρίσκει άλλο σημείο που κρατάει ήδη το ίδιο place_id
func placeConflictFilter(exclude primitive.ObjectID, placeID string) bson.M {
	return bson.M{"place_id": placeID, "_id": bson.M{"$ne": exclude}}
}

// UpdateLocation αντικαθιστά τα πεδία ενός σημείου
func UpdateLocation(id string, updated Location) (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Location{}, err
	}

	// το place_id πρέπει να μείνει μοναδικό και μετά την ενημέρωση
	if updated.PlaceID != "" {
		var existing Location
		err = db.LocationCollection.FindOne(ctx, placeConflictFilter(objID, updated.PlaceID)).Decode(&existing)
		if err == nil {
			return Location{}, ErrDuplicatePlace
		}
	}

	updated.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"place_id":     updated.PlaceID,
			"name":         updated.Name,
			"description":  updated.Description,
			"coordinates":  updated.Coordinates,
			"address":      updated.Address,
			"types":        updated.Types,
			"primary_type": updated.PrimaryType,
			"age_range":    updated.AgeRange,
			"price_range":  updated.PriceRange,
			"email":        updated.Email,
			"phone":        updated.Phone,
			"website":      updated.Website,
			"featured":     updated.Featured,
			"updated_at":   updated.UpdatedAt,
		},
	}

	result, err := db.LocationCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return Location{}, err
	}
	if result.MatchedCount == 0 {
		return Location{}, mongo.ErrNoDocuments
	}

	return GetLocationByID(id)
}

// DeleteLocation σβήνει ένα σημείο
func DeleteLocation(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := db.LocationCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddLocationImages προσθέτει URLs φωτογραφιών (μετά το upload στο bucket)
func AddLocationImages(id string, urls []string) (Location, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Location{}, err
	}

	update := bson.M{
		"$push": bson.M{"images": bson.M{"$each": urls}},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	result, err := db.LocationCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return Location{}, err
	}
	if result.MatchedCount == 0 {
		return Location{}, mongo.ErrNoDocuments
	}

	return GetLocationByID(id)
}

// UpdatePlaceSnapshot γράφει τα φρέσκα στοιχεία από το Google Places
func UpdatePlaceSnapshot(id primitive.ObjectID, snap PlaceSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"place": snap}}

	result, err := db.LocationCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// LocationsWithPlaceID επιστρέφει όσα σημεία έχουν δεμένο Google place_id
// (αυτά ανανεώνει το νυχτερινό job)
func LocationsWithPlaceID() ([]Location, error) {
	return GetLocations(bson.M{"place_id": bson.M{"$exists": true, "$ne": ""}}, 0)
}

// LocationsCreatedSince για το εβδομαδιαίο digest
func LocationsCreatedSince(since time.Time) ([]Location, error) {
	return GetLocations(bson.M{"created_at": bson.M{"$gte": since}}, 0)
}
