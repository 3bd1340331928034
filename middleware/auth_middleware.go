package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// AdminAuth φυλάει τα admin endpoints. Περνάει είτε με το στατικό
// ADMIN_TOKEN στο Authorization header είτε με το session cookie του login.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminToken := os.Getenv("ADMIN_TOKEN")
		secret := jwtSecret()

		if adminToken == "" && len(secret) == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
			c.Abort()
			return
		}

		// 1. Authorization: Bearer <ADMIN_TOKEN>
		if adminToken != "" {
			auth := c.GetHeader("Authorization")
			if strings.TrimPrefix(auth, "Bearer ") == adminToken && auth != "" {
				c.Set("admin", true)
				c.Next()
				return
			}
		}

		// 2. admin session cookie από το /admin/login
		if len(secret) > 0 {
			tokenString, err := c.Cookie("admin_token")
			if err == nil && validAdminJWT(tokenString, secret) {
				c.Set("admin", true)
				c.Next()
				return
			}
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin access required"})
		c.Abort()
	}
}

func validAdminJWT(tokenString string, secret []byte) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	role, _ := claims["role"].(string)
	return role == "admin"
}
