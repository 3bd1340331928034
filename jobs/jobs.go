package jobs

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"pamekids-api/cache"
	"pamekids-api/models"
	"pamekids-api/places"
	"pamekids-api/services"
	"pamekids-api/utils"

	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"
)

var scheduler *cron.Cron

// Start σηκώνει τα προγραμματισμένα jobs:
// κάθε βράδυ στις 4 ανανέωση των Google snapshots, κάθε Δευτέρα πρωί το digest.
func Start() {
	scheduler = cron.New()

	if _, err := scheduler.AddFunc("0 4 * * *", RefreshPlaceSnapshots); err != nil {
		log.Println("Αποτυχία προγραμματισμού του refresh job:", err)
	}
	if _, err := scheduler.AddFunc("0 9 * * 1", SendWeeklyDigest); err != nil {
		log.Println("Αποτυχία προγραμματισμού του digest job:", err)
	}

	scheduler.Start()
	log.Println("Τα προγραμματισμένα jobs ξεκίνησαν")
}

// Stop σταματάει τον scheduler (περιμένει όσα jobs τρέχουν ήδη)
func Stop() {
	if scheduler == nil {
		return
	}
	ctx := scheduler.Stop()
	<-ctx.Done()
	log.Println("Τα προγραμματισμένα jobs σταμάτησαν")
}

// RefreshPlaceSnapshots ξαναρωτάει το Google Places για κάθε σημείο με δεμένο
// place_id. Με throttle — το Places API χρεώνει ανά κλήση και κόβει τα bursts.
func RefreshPlaceSnapshots() {
	client, err := places.FromEnv()
	if err != nil {
		log.Println("Το refresh παραλείπεται:", err)
		return
	}

	locations, err := models.LocationsWithPlaceID()
	if err != nil {
		log.Println("Αποτυχία φόρτωσης σημείων για refresh:", err)
		return
	}
	if len(locations) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// 5 κλήσεις το δευτερόλεπτο φτάνουν και περισσεύουν
	limiter := rate.NewLimiter(rate.Every(200*time.Millisecond), 1)

	refreshed, failed := 0, 0
	for _, loc := range locations {
		if err := limiter.Wait(ctx); err != nil {
			log.Println("Το refresh διακόπηκε:", err)
			break
		}
		if err := services.RefreshLocationSnapshot(ctx, client, loc); err != nil {
			log.Printf("Αποτυχία refresh για %s (%s): %v", loc.Name, loc.PlaceID, err)
			failed++
			continue
		}
		refreshed++
	}

	// το cached listing κουβαλάει τα snapshots, οπότε πρέπει να ξαναχτιστεί
	cache.Delete(ctx, cache.LocationListKey)
	log.Printf("Refresh snapshots: %d οκ, %d απέτυχαν", refreshed, failed)
}

// SendWeeklyDigest στέλνει στους ενεργούς συνδρομητές ό,τι νέο μπήκε την εβδομάδα
func SendWeeklyDigest() {
	since := time.Now().AddDate(0, 0, -7)

	locations, err := models.LocationsCreatedSince(since)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης νέων σημείων για το digest:", err)
		return
	}
	posts, err := models.PostsPublishedSince(since)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης νέων άρθρων για το digest:", err)
		return
	}
	if !services.DigestHasNews(locations, posts) {
		log.Println("Δεν υπάρχει κάτι νέο αυτή την εβδομάδα, το digest παραλείπεται")
		return
	}

	subscribers, err := models.ActiveSubscribers()
	if err != nil {
		log.Println("Αποτυχία φόρτωσης συνδρομητών:", err)
		return
	}
	if len(subscribers) == 0 {
		return
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	subject, body := services.BuildWeeklyDigest(locations, posts, baseURL)

	sent, failed := 0, 0
	for _, sub := range subscribers {
		personal := body + fmt.Sprintf("\nΓια να διαγραφείς: %s/newsletter/unsubscribe?token=%s\n", baseURL, sub.UnsubscribeToken)
		if err := utils.SendEmail(sub.Email, subject, personal); err != nil {
			log.Printf("Αποτυχία αποστολής digest στο %s: %v", sub.Email, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("Εβδομαδιαίο digest: %d εστάλησαν, %d απέτυχαν", sent, failed)
}
