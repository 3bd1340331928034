package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// SendEmail στέλνει απλό text email μέσω SMTP. Χωρίς EMAIL_FROM/EMAIL_PASS
// δεν στέλνουμε τίποτα — επιστρέφουμε error και ο caller απλά το γράφει στο log.
func SendEmail(toEmail, subject, body string) error {
	from := os.Getenv("EMAIL_FROM")
	pass := os.Getenv("EMAIL_PASS")
	if from == "" || pass == "" {
		return fmt.Errorf("email is not configured (EMAIL_FROM/EMAIL_PASS)")
	}

	addr := os.Getenv("SMTP_ADDR")
	if addr == "" {
		addr = "smtp.gmail.com:587"
	}
	host := addr
	if i := strings.Index(addr, ":"); i >= 0 {
		host = addr[:i]
	}

	msg := fmt.Sprintf("Subject: %s\nFrom: %s\nTo: %s\n\n%s", subject, from, toEmail, body)

	return smtp.SendMail(
		addr,
		smtp.PlainAuth("", from, pass, host),
		from,
		[]string{toEmail},
		[]byte(msg),
	)
}

// WelcomeEmail είναι το μήνυμα καλωσορίσματος στο newsletter
func WelcomeEmail(name, unsubscribeURL string) (string, string) {
	greeting := "Γεια σου"
	if name != "" {
		greeting = "Γεια σου " + name
	}

	subject := "Καλώς ήρθες στο PameKids! 🎈"

	body := fmt.Sprintf(`%s,

Καλώς ήρθες στο newsletter του PameKids!

Κάθε εβδομάδα θα σου στέλνουμε τις καλύτερες δραστηριότητες για παιδιά
στην περιοχή σου — παιδότοποι, μουσεία, αθλητισμός, τέχνες και πολλά ακόμα.

Αν αλλάξεις γνώμη, μπορείς να διαγραφείς εδώ:
%s

Πάμε;
Η ομάδα του PameKids
`, greeting, unsubscribeURL)

	return subject, body
}
