package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client είναι nil όταν δεν έχει οριστεί REDIS_URL — τότε το cache είναι
// απενεργοποιημένο και όλα τα helpers απαντάνε σαν cache miss.
var Client *redis.Client

const (
	LocationListKey = "locations:all"

	LocationListTTL = 5 * time.Minute
	PlaceTTL        = 24 * time.Hour
)

// Init συνδέεται στο Redis αν υπάρχει REDIS_URL. Χωρίς Redis η εφαρμογή
// δουλεύει κανονικά, απλά χωρίς cache.
func Init() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("REDIS_URL not set, cache disabled")
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Println("Invalid REDIS_URL, cache disabled:", err)
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Failed to ping Redis, cache disabled:", err)
		return
	}

	Client = client
	log.Println("Connected to Redis")
}

// Close κλείνει τη σύνδεση
func Close() {
	if Client == nil {
		return
	}
	if err := Client.Close(); err != nil {
		log.Println("Failed to close Redis:", err)
	}
	Client = nil
}

// PlaceKey κλειδί για τα στοιχεία Google Places ενός σημείου
func PlaceKey(placeID string) string {
	return "place:" + placeID
}

// GetJSON διαβάζει και κάνει unmarshal μια τιμή. Επιστρέφει false σε miss.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if Client == nil {
		return false
	}

	raw, err := Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache: get %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("cache: bad JSON in %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON γράφει μια τιμή με TTL. Αποτυχία cache δεν είναι αποτυχία request.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if Client == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache: marshal %s: %v", key, err)
		return
	}

	if err := Client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}

// Delete σβήνει κλειδιά (invalidation μετά από admin αλλαγές)
func Delete(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	if err := Client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache: del %v: %v", keys, err)
	}
}
