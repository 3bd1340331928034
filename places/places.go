package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Τα ζωντανά στοιχεία κάθε σημείου (βαθμολογία, ωράριο) έρχονται από το
// Google Places Details API με το server-side κλειδί.
const defaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Τα μόνα πεδία που ζητάμε — κρατάει το κόστος ανά κλήση χαμηλό.
const detailFields = "rating,user_ratings_total,opening_hours"

var ErrNotFound = errors.New("place not found")
var ErrNoAPIKey = errors.New("GOOGLE_MAPS_API_KEY not set")

// Details είναι ό,τι κρατάμε από την απάντηση του Google
type Details struct {
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	OpeningHours     []string `json:"opening_hours,omitempty"`
	OpenNow          *bool    `json:"open_now,omitempty"`
}

type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// NewClient φτιάχνει client για το Places API
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FromEnv διαβάζει το κλειδί από το environment
func FromEnv() (*Client, error) {
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		return nil, ErrNoAPIKey
	}
	return NewClient(key), nil
}

// σχήμα της απάντησης του details endpoint
type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Rating           float64 `json:"rating"`
		UserRatingsTotal int     `json:"user_ratings_total"`
		OpeningHours     *struct {
			OpenNow     *bool    `json:"open_now"`
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
	} `json:"result"`
}

// GetDetails φέρνει τα στοιχεία ενός place_id
func (c *Client) GetDetails(ctx context.Context, placeID string) (Details, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("key", c.APIKey)

	reqURL := c.BaseURL + "/details/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Details{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Details{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("places: unexpected HTTP status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Details{}, err
	}

	var parsed detailsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Details{}, fmt.Errorf("places: bad response: %w", err)
	}

	switch parsed.Status {
	case "OK":
		// συνεχίζουμε
	case "ZERO_RESULTS", "NOT_FOUND":
		return Details{}, ErrNotFound
	default:
		if parsed.ErrorMessage != "" {
			return Details{}, fmt.Errorf("places: %s: %s", parsed.Status, parsed.ErrorMessage)
		}
		return Details{}, fmt.Errorf("places: %s", parsed.Status)
	}

	d := Details{
		Rating:           parsed.Result.Rating,
		UserRatingsTotal: parsed.Result.UserRatingsTotal,
	}
	if parsed.Result.OpeningHours != nil {
		d.OpeningHours = parsed.Result.OpeningHours.WeekdayText
		d.OpenNow = parsed.Result.OpeningHours.OpenNow
	}
	return d, nil
}

// PhotoURL φτιάχνει το URL μιας φωτογραφίας από photo_reference
func (c *Client) PhotoURL(photoRef string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 800
	}
	q := url.Values{}
	q.Set("photo_reference", photoRef)
	q.Set("maxwidth", fmt.Sprintf("%d", maxWidth))
	q.Set("key", c.APIKey)
	return c.BaseURL + "/photo?" + q.Encode()
}
