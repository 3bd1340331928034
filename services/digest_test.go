package services

import (
	"testing"

	"pamekids-api/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildWeeklyDigest(t *testing.T) {
	locations := []models.Location{
		{Name: "Παιδότοπος Χαρούμενο Σύννεφο", Address: "Κηφισίας 12, Μαρούσι"},
		{Name: "Πάρκο Τρίτση"},
	}
	posts := []models.BlogPost{
		{Title: "5 βροχερές μέρες, 5 ιδέες", Slug: "5-vroxeres-meres-5-idees"},
	}

	subject, body := BuildWeeklyDigest(locations, posts, "https://pamekids.gr")

	assert.Contains(t, subject, "PameKids")

	assert.Contains(t, body, "Παιδότοπος Χαρούμενο Σύννεφο")
	assert.Contains(t, body, "(Κηφισίας 12, Μαρούσι)")
	assert.Contains(t, body, "Πάρκο Τρίτση")
	assert.Contains(t, body, "5 βροχερές μέρες, 5 ιδέες")
	assert.Contains(t, body, "https://pamekids.gr/blog/5-vroxeres-meres-5-idees")
}

func TestBuildWeeklyDigest_OnlyLocations(t *testing.T) {
	locations := []models.Location{{Name: "Μουσείο Πειραμάτων"}}

	_, body := BuildWeeklyDigest(locations, nil, "https://pamekids.gr")

	assert.Contains(t, body, "Νέα σημεία στον χάρτη")
	assert.NotContains(t, body, "Νέα άρθρα στο blog")
}

func TestBuildWeeklyDigest_OnlyPosts(t *testing.T) {
	posts := []models.BlogPost{{Title: "Οδηγός για γονείς", Slug: "odigos-gia-goneis"}}

	_, body := BuildWeeklyDigest(nil, posts, "https://pamekids.gr")

	assert.NotContains(t, body, "Νέα σημεία στον χάρτη")
	assert.Contains(t, body, "Νέα άρθρα στο blog")
}

func TestDigestHasNews(t *testing.T) {
	locations := []models.Location{{Name: "Πάρκο Τρίτση"}}
	posts := []models.BlogPost{{Title: "Οδηγός για γονείς"}}

	// χωρίς τίποτα νέο δεν στέλνουμε email
	assert.False(t, DigestHasNews(nil, nil))
	assert.False(t, DigestHasNews([]models.Location{}, []models.BlogPost{}))

	assert.True(t, DigestHasNews(locations, nil))
	assert.True(t, DigestHasNews(nil, posts))
	assert.True(t, DigestHasNews(locations, posts))
}
