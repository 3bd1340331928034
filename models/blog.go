package models

import (
	"context"
	"errors"
	"time"

	db "pamekids-api/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateSlug = errors.New("blog post with this slug already exists")

// BlogPost είναι άρθρο του blog (ιδέες για δραστηριότητες, νέα κτλ)
type BlogPost struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Slug        string             `json:"slug" bson:"slug"`
	Title       string             `json:"title" bson:"title"`
	Summary     string             `json:"summary,omitempty" bson:"summary,omitempty"`
	Content     string             `json:"content" bson:"content"`
	CoverImage  string             `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	Tags        []string           `json:"tags" bson:"tags"`
	Author      string             `json:"author,omitempty" bson:"author,omitempty"`
	Published   bool               `json:"published" bson:"published"`
	PublishedAt *time.Time         `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// AddBlogPost γράφει νέο άρθρο, το slug πρέπει να είναι μοναδικό
func AddBlogPost(post BlogPost) (BlogPost, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing BlogPost
	err := db.BlogCollection.FindOne(ctx, bson.M{"slug": post.Slug}).Decode(&existing)
	if err == nil {
		return BlogPost{}, ErrDuplicateSlug
	}

	post.ID = primitive.NewObjectID()
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	// όταν δημοσιεύεται χωρίς ημερομηνία, βάζουμε τώρα
	if post.Published && post.PublishedAt == nil {
		now := post.CreatedAt
		post.PublishedAt = &now
	}

	_, err = db.BlogCollection.InsertOne(ctx, post)
	if err != nil {
		return BlogPost{}, err
	}
	return post, nil
}

// GetPublishedPosts φέρνει δημοσιευμένα άρθρα, νεότερα πρώτα
func GetPublishedPosts(tag string, limit int64) ([]BlogPost, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"published": true}
	if tag != "" {
		filter["tags"] = tag
	}

	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := db.BlogCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []BlogPost{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostBySlug — μόνο δημοσιευμένα, τα drafts δεν φαίνονται δημόσια
func GetPostBySlug(slug string) (BlogPost, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var post BlogPost
	err := db.BlogCollection.FindOne(ctx, bson.M{"slug": slug, "published": true}).Decode(&post)
	if err != nil {
		return BlogPost{}, err
	}
	return post, nil
}

// GetAllPosts για το admin (μαζί με drafts)
func GetAllPosts() ([]BlogPost, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.BlogCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []BlogPost{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateBlogPost ενημερώνει άρθρο με βάση το ObjectID
func UpdateBlogPost(id string, updated BlogPost) (BlogPost, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return BlogPost{}, err
	}

	// αν το slug αλλάζει, δεν πρέπει να πέσει πάνω σε άλλο άρθρο
	var existing BlogPost
	err = db.BlogCollection.FindOne(ctx, bson.M{"slug": updated.Slug, "_id": bson.M{"$ne": objID}}).Decode(&existing)
	if err == nil {
		return BlogPost{}, ErrDuplicateSlug
	}

	updated.UpdatedAt = time.Now()
	if updated.Published && updated.PublishedAt == nil {
		now := updated.UpdatedAt
		updated.PublishedAt = &now
	}

	update := bson.M{
		"$set": bson.M{
			"slug":         updated.Slug,
			"title":        updated.Title,
			"summary":      updated.Summary,
			"content":      updated.Content,
			"cover_image":  updated.CoverImage,
			"tags":         updated.Tags,
			"author":       updated.Author,
			"published":    updated.Published,
			"published_at": updated.PublishedAt,
			"updated_at":   updated.UpdatedAt,
		},
	}

	result, err := db.BlogCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return BlogPost{}, err
	}
	if result.MatchedCount == 0 {
		return BlogPost{}, mongo.ErrNoDocuments
	}

	updated.ID = objID
	return updated, nil
}

// DeleteBlogPost σβήνει άρθρο
func DeleteBlogPost(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	result, err := db.BlogCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PostsPublishedSince για το εβδομαδιαίο digest
func PostsPublishedSince(since time.Time) ([]BlogPost, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"published": true, "published_at": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})

	cursor, err := db.BlogCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []BlogPost{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
