package models

import (
	"errors"
	"strings"
	"sync"
	"time"

	"pamekids-api/filestore"

	"github.com/google/uuid"
)

const subscribersFile = "subscribers.json"

// Οι ηλικιακές ομάδες που μπορεί να διαλέξει κάποιος στο newsletter
var AllowedAgeGroups = []string{"0-2", "3-5", "6-9", "10-12", "13-16"}

var ErrAlreadySubscribed = errors.New("email is already subscribed")
var ErrSubscriberNotFound = errors.New("subscriber not found")

// ένα mutex για όλο το αρχείο — διαβάζουμε, αλλάζουμε, ξαναγράφουμε
var subscribersMu sync.Mutex

// Subscriber είναι μια εγγραφή στο newsletter (data/subscribers.json)
type Subscriber struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name,omitempty"`
	AgeGroups        []string   `json:"age_groups,omitempty"`
	Active           bool       `json:"active"`
	UnsubscribeToken string     `json:"unsubscribe_token"`
	CreatedAt        time.Time  `json:"created_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"`
}

func loadSubscribers() ([]Subscriber, error) {
	subscribers := []Subscriber{}
	err := filestore.Load(subscribersFile, &subscribers)
	return subscribers, err
}

// ValidAgeGroup ελέγχει μια ηλικιακή ομάδα
func ValidAgeGroup(g string) bool {
	return containsString(AllowedAgeGroups, g)
}

// Subscribe γράφει νέα εγγραφή. Αν το email υπήρχε και είχε διαγραφεί,
// ξανανοίγει την παλιά εγγραφή. Επιστρέφει true όταν η εγγραφή είναι καινούρια.
func Subscribe(email, name string, ageGroups []string) (Subscriber, bool, error) {
	subscribersMu.Lock()
	defer subscribersMu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))

	subscribers, err := loadSubscribers()
	if err != nil {
		return Subscriber{}, false, err
	}

	for i, s := range subscribers {
		if s.Email != email {
			continue
		}
		if s.Active {
			return Subscriber{}, false, ErrAlreadySubscribed
		}
		// επανεγγραφή
		subscribers[i].Active = true
		subscribers[i].UnsubscribedAt = nil
		if name != "" {
			subscribers[i].Name = name
		}
		if len(ageGroups) > 0 {
			subscribers[i].AgeGroups = ageGroups
		}
		if err := filestore.Save(subscribersFile, subscribers); err != nil {
			return Subscriber{}, false, err
		}
		return subscribers[i], false, nil
	}

	sub := Subscriber{
		ID:               uuid.NewString(),
		Email:            email,
		Name:             name,
		AgeGroups:        ageGroups,
		Active:           true,
		UnsubscribeToken: uuid.NewString(),
		CreatedAt:        time.Now(),
	}

	subscribers = append(subscribers, sub)
	if err := filestore.Save(subscribersFile, subscribers); err != nil {
		return Subscriber{}, false, err
	}
	return sub, true, nil
}

// Unsubscribe με το token από το link του email. Idempotent.
func Unsubscribe(token string) (Subscriber, error) {
	subscribersMu.Lock()
	defer subscribersMu.Unlock()

	subscribers, err := loadSubscribers()
	if err != nil {
		return Subscriber{}, err
	}

	for i, s := range subscribers {
		if s.UnsubscribeToken != token {
			continue
		}
		if s.Active {
			now := time.Now()
			subscribers[i].Active = false
			subscribers[i].UnsubscribedAt = &now
			if err := filestore.Save(subscribersFile, subscribers); err != nil {
				return Subscriber{}, err
			}
		}
		return subscribers[i], nil
	}

	return Subscriber{}, ErrSubscriberNotFound
}

// ListSubscribers για το admin. activeOnly=nil σημαίνει όλοι.
func ListSubscribers(activeOnly *bool) ([]Subscriber, error) {
	subscribersMu.Lock()
	defer subscribersMu.Unlock()

	subscribers, err := loadSubscribers()
	if err != nil {
		return nil, err
	}
	if activeOnly == nil {
		return subscribers, nil
	}

	filtered := []Subscriber{}
	for _, s := range subscribers {
		if s.Active == *activeOnly {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}

// ActiveSubscribers είναι οι παραλήπτες του εβδομαδιαίου digest
func ActiveSubscribers() ([]Subscriber, error) {
	active := true
	return ListSubscribers(&active)
}
