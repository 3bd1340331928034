package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"pamekids-api/cache"
	"pamekids-api/gcs"
	"pamekids-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

const maxImageSize = 5 << 20 // 5MB ανά αρχείο

// uploadImageToGCS ανεβάζει ένα αρχείο στο bucket και επιστρέφει το δημόσιο URL
func uploadImageToGCS(ctx context.Context, file multipart.File, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	objectName := fmt.Sprintf("locations/%s_%d%s", uuid.New().String(), time.Now().UnixNano(), ext)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	writer := gcs.Client.Bucket(gcs.Bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gcs.Bucket, objectName), nil
}

// UploadLocationImages δέχεται multipart εικόνες και τις κολλάει στο σημείο
func UploadLocationImages(c *gin.Context) {
	if !gcs.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	// το σημείο πρέπει να υπάρχει πριν ανεβάσουμε τίποτα
	if _, err := models.GetLocationByID(id); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		log.Println("Αποτυχία φόρτωσης σημείου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load location"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images provided"})
		return
	}
	if len(files) > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many images (max 10)"})
		return
	}

	urls := []string{}
	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedImageExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported image type: %s", ext)})
			return
		}
		if header.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Image %s is too large (max 5MB)", header.Filename)})
			return
		}

		file, err := header.Open()
		if err != nil {
			log.Println("Αποτυχία ανάγνωσης εικόνας:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
			return
		}

		url, err := uploadImageToGCS(c.Request.Context(), file, header.Filename)
		file.Close()
		if err != nil {
			log.Println("Αποτυχία ανεβάσματος στο bucket:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		urls = append(urls, url)
	}

	location, err := models.AddLocationImages(id, urls)
	if err != nil {
		log.Println("Αποτυχία αποθήκευσης των URLs εικόνων:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URLs"})
		return
	}

	cache.Delete(c.Request.Context(), cache.LocationListKey)
	c.JSON(http.StatusOK, gin.H{"message": "Images uploaded", "urls": urls, "location": location})
}
