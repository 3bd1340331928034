package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"pamekids-api/models"
	"pamekids-api/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetBlogPosts — δημοσιευμένα άρθρα για τους επισκέπτες
func GetBlogPosts(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive number"})
			return
		}
		if v > 100 {
			v = 100
		}
		limit = v
	}

	posts, err := models.GetPublishedPosts(strings.TrimSpace(c.Query("tag")), limit)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης άρθρων:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetBlogPost επιστρέφει ένα δημοσιευμένο άρθρο με το slug του
func GetBlogPost(c *gin.Context) {
	post, err := models.GetPostBySlug(c.Param("slug"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Println("Αποτυχία φόρτωσης άρθρου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListAllBlogPosts — λίστα διαχειριστή μαζί με τα πρόχειρα
func ListAllBlogPosts(c *gin.Context) {
	posts, err := models.GetAllPosts()
	if err != nil {
		log.Println("Αποτυχία φόρτωσης άρθρων:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreateBlogPost — νέο άρθρο, το slug βγαίνει από τον τίτλο αν λείπει
func CreateBlogPost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(post.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if strings.TrimSpace(post.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if post.Slug == "" {
		post.Slug = utils.Slugify(post.Title)
	} else {
		post.Slug = utils.Slugify(post.Slug)
	}
	if post.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not derive a slug from the title"})
		return
	}

	newPost, err := models.AddBlogPost(post)
	if err == models.ErrDuplicateSlug {
		c.JSON(http.StatusConflict, gin.H{"error": "A post with this slug already exists"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία αποθήκευσης άρθρου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save post"})
		return
	}

	c.JSON(http.StatusCreated, newPost)
}

// UpdateBlogPost ενημερώνει άρθρο με το ObjectID του
func UpdateBlogPost(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(post.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if strings.TrimSpace(post.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if post.Slug == "" {
		post.Slug = utils.Slugify(post.Title)
	} else {
		post.Slug = utils.Slugify(post.Slug)
	}
	if post.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not derive a slug from the title"})
		return
	}

	updated, err := models.UpdateBlogPost(id, post)
	if err == models.ErrDuplicateSlug {
		c.JSON(http.StatusConflict, gin.H{"error": "A post with this slug already exists"})
		return
	}
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία ενημέρωσης άρθρου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteBlogPost σβήνει άρθρο
func DeleteBlogPost(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	err := models.DeleteBlogPost(id)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία διαγραφής άρθρου:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
