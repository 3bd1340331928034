package controllers

import (
	"fmt"
	"log"
	"net/http"

	"pamekids-api/models"

	"github.com/gin-gonic/gin"
)

// CreateReport δέχεται αναφορά προβλήματος από τη φόρμα του χάρτη
func CreateReport(c *gin.Context) {
	type ReportInput struct {
		Type         string `json:"type"`
		Description  string `json:"description" binding:"required"`
		Email        string `json:"email" binding:"omitempty,email"`
		LocationID   string `json:"location_id"`
		LocationName string `json:"location_name"`
	}

	var input ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is required and email must be valid"})
		return
	}

	if input.Type != "" && !models.ValidReportType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown report type: %s", input.Type)})
		return
	}

	report, err := models.CreateReport(models.IssueReport{
		Type:         input.Type,
		Description:  input.Description,
		Email:        input.Email,
		LocationID:   input.LocationID,
		LocationName: input.LocationName,
	})
	if err != nil {
		log.Println("Αποτυχία αποθήκευσης αναφοράς:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListReports — μόνο για τον διαχειριστή
func ListReports(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidReportStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown status: %s", status)})
		return
	}

	reports, err := models.ListReports(status)
	if err != nil {
		log.Println("Αποτυχία φόρτωσης αναφορών:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// UpdateReportStatus αλλάζει την κατάσταση μιας αναφοράς (pending → resolved)
func UpdateReportStatus(c *gin.Context) {
	id := c.Param("id")

	type StatusInput struct {
		Status string `json:"status" binding:"required"`
	}

	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	if !models.ValidReportStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown status: %s", input.Status)})
		return
	}

	report, err := models.UpdateReportStatus(id, input.Status)
	if err == models.ErrReportNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		log.Println("Αποτυχία ενημέρωσης αναφοράς:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}

	c.JSON(http.StatusOK, report)
}
