package models

import (
	"errors"
	"sync"
	"time"

	"pamekids-api/filestore"

	"github.com/google/uuid"
)

const reportsFile = "reports.json"

// Τι μπορεί να αναφέρει ένας χρήστης για ένα σημείο
var AllowedReportTypes = []string{
	"wrong-info",
	"closed-permanently",
	"inappropriate",
	"suggestion",
	"other",
}

var AllowedReportStatuses = []string{"pending", "reviewed", "resolved"}

var ErrReportNotFound = errors.New("report not found")

var reportsMu sync.Mutex

// IssueReport είναι αναφορά προβλήματος από χρήστη (data/reports.json)
type IssueReport struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Email        string    `json:"email,omitempty"`
	LocationID   string    `json:"location_id,omitempty"`
	LocationName string    `json:"location_name,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func loadReports() ([]IssueReport, error) {
	reports := []IssueReport{}
	err := filestore.Load(reportsFile, &reports)
	return reports, err
}

// ValidReportType ελέγχει τον τύπο αναφοράς
func ValidReportType(t string) bool {
	return containsString(AllowedReportTypes, t)
}

// ValidReportStatus ελέγχει την κατάσταση
func ValidReportStatus(s string) bool {
	return containsString(AllowedReportStatuses, s)
}

// CreateReport αποθηκεύει νέα αναφορά, ξεκινάει πάντα σαν pending
func CreateReport(report IssueReport) (IssueReport, error) {
	reportsMu.Lock()
	defer reportsMu.Unlock()

	reports, err := loadReports()
	if err != nil {
		return IssueReport{}, err
	}

	report.ID = uuid.NewString()
	if report.Type == "" {
		report.Type = "other"
	}
	report.Status = "pending"
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	reports = append(reports, report)
	if err := filestore.Save(reportsFile, reports); err != nil {
		return IssueReport{}, err
	}
	return report, nil
}

// ListReports για το admin, προαιρετικά φιλτραρισμένες ανά status
func ListReports(status string) ([]IssueReport, error) {
	reportsMu.Lock()
	defer reportsMu.Unlock()

	reports, err := loadReports()
	if err != nil {
		return nil, err
	}
	if status == "" {
		return reports, nil
	}

	filtered := []IssueReport{}
	for _, r := range reports {
		if r.Status == status {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// UpdateReportStatus αλλάζει την κατάσταση μιας αναφοράς
func UpdateReportStatus(id, status string) (IssueReport, error) {
	reportsMu.Lock()
	defer reportsMu.Unlock()

	reports, err := loadReports()
	if err != nil {
		return IssueReport{}, err
	}

	for i, r := range reports {
		if r.ID != id {
			continue
		}
		reports[i].Status = status
		reports[i].UpdatedAt = time.Now()
		if err := filestore.Save(reportsFile, reports); err != nil {
			return IssueReport{}, err
		}
		return reports[i], nil
	}

	return IssueReport{}, ErrReportNotFound
}
