package services

import (
	"context"
	"time"

	"pamekids-api/cache"
	"pamekids-api/models"
	"pamekids-api/places"
)

// SnapshotMaxAge — μετά από αυτό το όριο ξαναρωτάμε το Google Places
const SnapshotMaxAge = 24 * time.Hour

// SnapshotFresh λέει αν μπορούμε να σερβίρουμε το αποθηκευμένο snapshot ως έχει
func SnapshotFresh(snap *models.PlaceSnapshot) bool {
	return snap != nil && time.Since(snap.FetchedAt) < SnapshotMaxAge
}

func snapshotFromDetails(details places.Details) models.PlaceSnapshot {
	return models.PlaceSnapshot{
		Rating:           details.Rating,
		UserRatingsTotal: details.UserRatingsTotal,
		OpeningHours:     details.OpeningHours,
		OpenNow:          details.OpenNow,
		FetchedAt:        time.Now(),
	}
}

// FetchPlaceSnapshot φέρνει τα ζωντανά στοιχεία ενός place.
// Πρώτα κοιτάει το Redis ώστε το Google να μην πληρώνεται δύο φορές για το ίδιο place μέσα στη μέρα.
func FetchPlaceSnapshot(ctx context.Context, client *places.Client, placeID string) (models.PlaceSnapshot, error) {
	var snap models.PlaceSnapshot
	if cache.GetJSON(ctx, cache.PlaceKey(placeID), &snap) {
		return snap, nil
	}

	details, err := client.GetDetails(ctx, placeID)
	if err != nil {
		return models.PlaceSnapshot{}, err
	}

	snap = snapshotFromDetails(details)
	cache.SetJSON(ctx, cache.PlaceKey(placeID), snap, cache.PlaceTTL)
	return snap, nil
}

// RefreshLocationSnapshot τραβάει φρέσκα στοιχεία από το Google και τα γράφει
// στη βάση και στο cache. Το νυχτερινό job δεν περνάει από το cache-first μονοπάτι
// γιατί σκοπός του είναι ακριβώς να το ανανεώσει.
func RefreshLocationSnapshot(ctx context.Context, client *places.Client, loc models.Location) error {
	details, err := client.GetDetails(ctx, loc.PlaceID)
	if err != nil {
		return err
	}

	snap := snapshotFromDetails(details)
	if err := models.UpdatePlaceSnapshot(loc.ID, snap); err != nil {
		return err
	}
	cache.SetJSON(ctx, cache.PlaceKey(loc.PlaceID), snap, cache.PlaceTTL)
	return nil
}
