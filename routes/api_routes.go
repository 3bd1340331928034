package routes

import (
	"time"

	"pamekids-api/controllers"
	middlewares "pamekids-api/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPublicRoutes(r *gin.Engine) {
	// όριο ανά IP στα public POST για να μη μας γεμίζουν spam
	limiter := middlewares.NewRateLimiter()

	// Ο χάρτης
	r.GET("/locations", controllers.GetLocations)          // λίστα με φίλτρα
	r.GET("/locations/nearby", controllers.GetNearbyLocations) // κοντά στον χρήστη
	r.GET("/locations/:id", controllers.GetLocation)
	r.GET("/locations/:id/place", controllers.GetLocationPlace) // ζωντανά στοιχεία Google

	// Blog
	r.GET("/blog", controllers.GetBlogPosts)
	r.GET("/blog/:slug", controllers.GetBlogPost)

	// Newsletter
	r.POST("/newsletter/subscribe", limiter.Limit(time.Minute, 5), controllers.Subscribe)
	r.GET("/newsletter/unsubscribe", controllers.UnsubscribeNewsletter)

	// Αναφορές προβλημάτων από επισκέπτες
	r.POST("/reports", limiter.Limit(time.Minute, 5), controllers.CreateReport)

	// Auth διαχειριστή
	r.POST("/admin/login", limiter.Limit(time.Minute, 10), controllers.AdminLogin)
	r.POST("/admin/logout", controllers.AdminLogout)
}

func SetupAdminRoutes(r *gin.Engine) {
	// Διαχείριση σημείων
	r.POST("/locations", middlewares.AdminAuth(), controllers.CreateLocation)
	r.PUT("/locations/:id", middlewares.AdminAuth(), controllers.UpdateLocation)
	r.DELETE("/locations/:id", middlewares.AdminAuth(), controllers.DeleteLocation)
	r.POST("/locations/:id/images", middlewares.AdminAuth(), controllers.UploadLocationImages)

	// Διαχείριση blog
	r.POST("/blog", middlewares.AdminAuth(), controllers.CreateBlogPost)
	r.PUT("/blog/:id", middlewares.AdminAuth(), controllers.UpdateBlogPost)
	r.DELETE("/blog/:id", middlewares.AdminAuth(), controllers.DeleteBlogPost)
	r.GET("/admin/blog", middlewares.AdminAuth(), controllers.ListAllBlogPosts) // μαζί με πρόχειρα

	// Λίστες μόνο για τον διαχειριστή
	r.GET("/newsletter/subscribers", middlewares.AdminAuth(), controllers.ListSubscribers)
	r.GET("/reports", middlewares.AdminAuth(), controllers.ListReports)
	r.PUT("/reports/:id/status", middlewares.AdminAuth(), controllers.UpdateReportStatus)

	// Χειροκίνητο refresh των Google snapshots
	r.POST("/admin/places/refresh", middlewares.AdminAuth(), controllers.RefreshPlaces)
}
