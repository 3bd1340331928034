package services

import (
	"math"

	"go.mongodb.org/mongo-driver/bson"
)

// LocationQuery είναι τα φίλτρα που στέλνει ο χάρτης
type LocationQuery struct {
	Types    []string
	Age      *int
	Price    string
	Featured *bool
	Keyword  string
	Bounds   *Bounds
}

// Bounds είναι το ορατό παράθυρο του χάρτη (south-west / north-east)
type Bounds struct {
	SWLat float64
	SWLng float64
	NELat float64
	NELng float64
}

// BuildLocationFilter χτίζει το Mongo filter από τα query params
func BuildLocationFilter(q LocationQuery) bson.M {
	filter := bson.M{}

	if len(q.Types) > 0 {
		filter["types"] = bson.M{"$in": q.Types}
	}

	// σημεία κατάλληλα για παιδί αυτής της ηλικίας
	if q.Age != nil {
		filter["age_range.min"] = bson.M{"$lte": *q.Age}
		filter["age_range.max"] = bson.M{"$gte": *q.Age}
	}

	if q.Price != "" {
		filter["price_range"] = q.Price
	}

	if q.Featured != nil {
		filter["featured"] = *q.Featured
	}

	if q.Keyword != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": q.Keyword, "$options": "i"}},
			{"description": bson.M{"$regex": q.Keyword, "$options": "i"}},
			{"address": bson.M{"$regex": q.Keyword, "$options": "i"}},
		}
	}

	if q.Bounds != nil {
		filter["coordinates.lat"] = bson.M{"$gte": q.Bounds.SWLat, "$lte": q.Bounds.NELat}
		filter["coordinates.lng"] = bson.M{"$gte": q.Bounds.SWLng, "$lte": q.Bounds.NELng}
	}

	return filter
}

const earthRadiusKm = 6371.0

// Haversine απόσταση δύο σημείων σε χιλιόμετρα
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBox γύρω από ένα σημείο — πρόχειρο φίλτρο πριν το haversine,
// για να μην υπολογίζουμε αποστάσεις για όλη τη βάση
func BoundingBox(lat, lng, radiusKm float64) Bounds {
	latDelta := radiusKm / 111.0 // ~111km ανά μοίρα γεωγραφικού πλάτους

	lngDelta := latDelta
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 0.01 {
		lngDelta = latDelta / cosLat
	}

	return Bounds{
		SWLat: lat - latDelta,
		SWLng: lng - lngDelta,
		NELat: lat + latDelta,
		NELng: lng + lngDelta,
	}
}
