package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"pamekids-api/models"
	"pamekids-api/utils"

	"github.com/gin-gonic/gin"
)

func unsubscribeURL(token string) string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/newsletter/unsubscribe?token=" + token
}

// Subscribe γράφει email στο newsletter και στέλνει καλωσόρισμα
func Subscribe(c *gin.Context) {
	type SubscribeInput struct {
		Email     string   `json:"email" binding:"required,email"`
		Name      string   `json:"name"`
		AgeGroups []string `json:"age_groups"`
	}

	var input SubscribeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	for _, g := range input.AgeGroups {
		if !models.ValidAgeGroup(g) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown age group: %s", g)})
			return
		}
	}

	subscriber, created, err := models.Subscribe(input.Email, input.Name, input.AgeGroups)
	if err == models.ErrAlreadySubscribed {
		c.JSON(http.StatusConflict, gin.H{"error": "This email is already subscribed"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία αποθήκευσης εγγραφής:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	// το email φεύγει στο background, δεν κρατάμε το request
	go func(s models.Subscriber) {
		subject, body := utils.WelcomeEmail(s.Name, unsubscribeURL(s.UnsubscribeToken))
		if err := utils.SendEmail(s.Email, subject, body); err != nil {
			log.Println("Failed to send welcome email:", err)
		}
	}(subscriber)

	status := http.StatusCreated
	if !created {
		// επανεγγραφή παλιού email
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"message": "Subscribed successfully"})
}

// UnsubscribeNewsletter είναι το link μέσα στα emails
func UnsubscribeNewsletter(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	_, err := models.Unsubscribe(token)
	if err == models.ErrSubscriberNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown unsubscribe token"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία διαγραφής από το newsletter:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// ListSubscribers — μόνο για τον διαχειριστή
func ListSubscribers(c *gin.Context) {
	var activeOnly *bool
	if v := c.Query("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active parameter"})
			return
		}
		activeOnly = &b
	}

	subscribers, err := models.ListSubscribers(activeOnly)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης συνδρομητών:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscribers"})
		return
	}

	c.JSON(http.StatusOK, subscribers)
}
