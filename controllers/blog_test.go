package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func blogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/blog", GetBlogPosts)
	r.POST("/blog", CreateBlogPost)
	r.PUT("/blog/:id", UpdateBlogPost)
	r.DELETE("/blog/:id", DeleteBlogPost)
	return r
}

func TestGetBlogPosts_BadLimit(t *testing.T) {
	r := blogRouter()

	req := httptest.NewRequest(http.MethodGet, "/blog?limit=abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/blog?limit=-1", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBlogPost_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `title=Hello`},
		{"missing title", `{"content": "κείμενο"}`},
		{"missing content", `{"title": "Τίτλος"}`},
		{"title only symbols", `{"title": "!!!", "content": "κείμενο"}`},
	}

	r := blogRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(r, "/blog", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateBlogPost_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `title=Hello`},
		{"missing title", `{"content": "κείμενο"}`},
		{"missing content", `{"title": "Τίτλος"}`},
		{"empty content", `{"title": "Τίτλος", "content": ""}`},
		{"title only symbols", `{"title": "!!!", "content": "κείμενο"}`},
	}

	// η ενημέρωση περνάει από τους ίδιους ελέγχους με τη δημιουργία
	r := blogRouter()
	putJSON := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := putJSON("/blog/65b1f0c2a4d3e2b1c0d9e8f7", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateDeleteBlogPost_BadID(t *testing.T) {
	r := blogRouter()

	req := httptest.NewRequest(http.MethodPut, "/blog/not-a-hex-id", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/blog/not-a-hex-id", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
