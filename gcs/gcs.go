package gcs

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var Client *storage.Client

// Bucket όπου ανεβαίνουν οι φωτογραφίες των σημείων (το storage bucket της
// εφαρμογής). Χωρίς STORAGE_BUCKET τα uploads απαντάνε 503.
var Bucket string

// InitGCS συνδέεται στο Google Cloud Storage και ελέγχει ότι το bucket υπάρχει
func InitGCS() {
	Bucket = os.Getenv("STORAGE_BUCKET")
	if Bucket == "" {
		log.Println("STORAGE_BUCKET not set, image uploads disabled")
		return
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	var err error
	Client, err = storage.NewClient(ctx, opts...)
	if err != nil {
		log.Fatalf("Δεν έγινε σύνδεση με το Google Cloud Storage: %v", err)
	}

	// έλεγχος ότι έχουμε πρόσβαση στο bucket
	_, err = Client.Bucket(Bucket).Attrs(ctx)
	if err != nil {
		log.Fatalf("Δεν υπάρχει πρόσβαση στο bucket %s: %v", Bucket, err)
	}
	log.Printf("Bucket %s is ready", Bucket)
}

// Enabled λέει αν τα uploads είναι διαθέσιμα
func Enabled() bool {
	return Client != nil && Bucket != ""
}

func Close() {
	if Client != nil {
		Client.Close()
	}
}
