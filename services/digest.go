package services

import (
	"fmt"
	"strings"

	"pamekids-api/models"
)

// DigestHasNews λέει αν μαζεύτηκε υλικό για το εβδομαδιαίο email. Χωρίς
// νέα σημεία και χωρίς νέα άρθρα το digest παραλείπεται.
func DigestHasNews(locations []models.Location, posts []models.BlogPost) bool {
	return len(locations) > 0 || len(posts) > 0
}

// BuildWeeklyDigest φτιάχνει το θέμα και το σώμα του εβδομαδιαίου email με
// ό,τι νέο μπήκε στον χάρτη και στο blog. Το unsubscribe link μπαίνει ανά
// παραλήπτη από τον αποστολέα.
func BuildWeeklyDigest(locations []models.Location, posts []models.BlogPost, baseURL string) (string, string) {
	subject := "PameKids: Νέες δραστηριότητες για αυτή την εβδομάδα"

	var b strings.Builder

	b.WriteString("Γεια σου!\n\n")
	b.WriteString("Να τι πρόσθεσε η ομάδα του PameKids αυτή την εβδομάδα:\n\n")

	if len(locations) > 0 {
		b.WriteString("Νέα σημεία στον χάρτη:\n")
		for _, loc := range locations {
			line := fmt.Sprintf("  - %s", loc.Name)
			if loc.Address != "" {
				line += " (" + loc.Address + ")"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(posts) > 0 {
		b.WriteString("Νέα άρθρα στο blog:\n")
		for _, post := range posts {
			b.WriteString(fmt.Sprintf("  - %s\n    %s/blog/%s\n", post.Title, baseURL, post.Slug))
		}
		b.WriteString("\n")
	}

	b.WriteString("Πάμε;\n")
	b.WriteString("Η ομάδα του PameKids\n")

	return subject, b.String()
}
