package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// Session token για το admin dashboard
func generateAdminJWT() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// AdminLogin ελέγχει τον κωδικό του διαχειριστή και επιστρέφει το στατικό
// ADMIN_TOKEN που βάζει το dashboard στα Authorization headers.
func AdminLogin(c *gin.Context) {
	type LoginInput struct {
		Password string `json:"password" binding:"required"`
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	hash := os.Getenv("ADMIN_PASSWORD_HASH")
	plain := os.Getenv("ADMIN_PASSWORD")
	if hash == "" && plain == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login is not configured"})
		return
	}

	// Έλεγχος κωδικού — με bcrypt hash αν υπάρχει, αλλιώς απλή σύγκριση
	ok := false
	if hash != "" {
		ok = bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)) == nil
	} else {
		ok = input.Password == plain
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	// session cookie για να μην κουβαλάει το dashboard το token σε κάθε tab
	if os.Getenv("JWT_SECRET") != "" {
		tokenString, err := generateAdminJWT()
		if err != nil {
			log.Println("Failed to sign admin session token:", err)
		} else {
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     "admin_token",
				Value:    tokenString,
				Path:     "/",
				MaxAge:   3600 * 24, // 1 μέρα, όσο και το exp
				Secure:   true,
				HttpOnly: true,
				SameSite: http.SameSiteNoneMode,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   os.Getenv("ADMIN_TOKEN"),
	})
}

// AdminLogout καθαρίζει το session cookie
func AdminLogout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "admin_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
