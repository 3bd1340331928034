package controllers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pamekids-api/filestore"
	"pamekids-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsletterRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/newsletter/subscribe", Subscribe)
	r.GET("/newsletter/unsubscribe", UnsubscribeNewsletter)
	r.GET("/newsletter/subscribers", ListSubscribers)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSubscribe_New(t *testing.T) {
	require.NoError(t, filestore.Init(t.TempDir()))
	t.Setenv("EMAIL_FROM", "") // το καλωσόρισμα απλά θα γράψει log

	rec := postJSON(newsletterRouter(), "/newsletter/subscribe",
		`{"email": "kid@example.com", "name": "Μαρία", "age_groups": ["3-5", "6-9"]}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Subscribed successfully")
}

func TestSubscribe_Duplicate(t *testing.T) {
	require.NoError(t, filestore.Init(t.TempDir()))
	t.Setenv("EMAIL_FROM", "")

	r := newsletterRouter()
	rec := postJSON(r, "/newsletter/subscribe", `{"email": "kid@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(r, "/newsletter/subscribe", `{"email": "kid@example.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubscribe_BadInput(t *testing.T) {
	require.NoError(t, filestore.Init(t.TempDir()))

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"name": "Μαρία"}`},
		{"invalid email", `{"email": "not-an-email"}`},
		{"unknown age group", `{"email": "kid@example.com", "age_groups": ["30-99"]}`},
		{"not json", `email=kid@example.com`},
	}

	r := newsletterRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(r, "/newsletter/subscribe", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSubscribe_ReactivationReturnsOK(t *testing.T) {
	require.NoError(t, filestore.Init(t.TempDir()))
	t.Setenv("EMAIL_FROM", "")

	sub, _, err := models.Subscribe("kid@example.com", "", nil)
	require.NoError(t, err)
	_, err = models.Unsubscribe(sub.UnsubscribeToken)
	require.NoError(t, err)

	// η επανεγγραφή δεν είναι νέα εγγραφή
	rec := postJSON(newsletterRouter(), "/newsletter/subscribe", `{"email": "kid@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnsubscribe(t *testing.T) {
	require.NoError(t, filestore.Init(t.TempDir()))

	sub, _, err := models.Subscribe("kid@example.com", "", nil)
	require.NoError(t, err)

	r := newsletterRouter()

	// χωρίς token
	req := httptest.NewRequest(http.MethodGet, "/newsletter/unsubscribe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// άγνωστο token
	req = httptest.NewRequest(http.MethodGet, "/newsletter/unsubscribe?token=bogus", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// σωστό token
	req = httptest.NewRequest(http.MethodGet, "/newsletter/unsubscribe?token="+sub.UnsubscribeToken, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	subs, err := models.ListSubscribers(nil)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Active)
}

func TestListSubscribers(t *testing.T) {
	require.NoError(t, filestore.Init(t.TempDir()))

	first, _, err := models.Subscribe("a@example.com", "", nil)
	require.NoError(t, err)
	_, _, err = models.Subscribe("b@example.com", "", nil)
	require.NoError(t, err)
	_, err = models.Unsubscribe(first.UnsubscribeToken)
	require.NoError(t, err)

	r := newsletterRouter()

	// κακό φίλτρο
	req := httptest.NewRequest(http.MethodGet, "/newsletter/subscribers?active=maybe", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// όλοι
	req = httptest.NewRequest(http.MethodGet, "/newsletter/subscribers", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var all []models.Subscriber
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	// μόνο ενεργοί
	req = httptest.NewRequest(http.MethodGet, "/newsletter/subscribers?active=true", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var active []models.Subscriber
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	require.Len(t, active, 1)
	assert.Equal(t, "b@example.com", active[0].Email)
}

func TestListSubscribers_ReadFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, filestore.Init(dir))
	// φάκελος στη θέση του αρχείου — το διάβασμα αποτυγχάνει
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subscribers.json"), 0o755))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	req := httptest.NewRequest(http.MethodGet, "/newsletter/subscribers", nil)
	rec := httptest.NewRecorder()
	newsletterRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// ο client βλέπει γενικό μήνυμα, η λεπτομέρεια πάει στο log
	assert.Contains(t, rec.Body.String(), "Failed to load subscribers")
	assert.NotContains(t, rec.Body.String(), "subscribers.json")
	assert.Contains(t, buf.String(), "Αποτυχία φόρτωσης συνδρομητών")
}
