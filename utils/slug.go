package utils

import (
	"strings"
	"unicode"
)

// Τα άρθρα του blog γράφονται στα ελληνικά, τα slugs όμως πρέπει να είναι
// λατινικά για να φτιάχνουν καθαρά URLs.
var greekToLatin = map[rune]string{
	'α': "a", 'ά': "a",
	'β': "v",
	'γ': "g",
	'δ': "d",
	'ε': "e", 'έ': "e",
	'ζ': "z",
	'η': "i", 'ή': "i",
	'θ': "th",
	'ι': "i", 'ί': "i", 'ϊ': "i", 'ΐ': "i",
	'κ': "k",
	'λ': "l",
	'μ': "m",
	'ν': "n",
	'ξ': "x",
	'ο': "o", 'ό': "o",
	'π': "p",
	'ρ': "r",
	'σ': "s", 'ς': "s",
	'τ': "t",
	'υ': "y", 'ύ': "y", 'ϋ': "y", 'ΰ': "y",
	'φ': "f",
	'χ': "ch",
	'ψ': "ps",
	'ω': "o", 'ώ': "o",
}

// Slugify φτιάχνει URL slug από τίτλο (με μεταγραφή των ελληνικών)
func Slugify(title string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(title) {
		if latin, ok := greekToLatin[r]; ok {
			b.WriteString(latin)
			continue
		}
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('-')
	}

	slug := b.String()
	// μαζεύουμε τις πολλαπλές παύλες
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
