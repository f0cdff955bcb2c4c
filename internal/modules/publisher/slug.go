package publisher

import (
	"strings"
	"unicode"

	"github.com/visapath/core/internal/models"
)

// Slugify lowercases the title and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

var visaTerms = []string{"visa", "permit", "immigration", "consulate", "embassy", "passport"}
var travelTerms = []string{"travel", "trip", "itinerary", "guide", "flight", "accommodation"}

// Categorize infers the content category from the title and keywords. The
// category drives the refresh interval, so visa terms win over travel terms.
func Categorize(title string, keywords []string) models.ContentCategory {
	haystack := strings.ToLower(title + " " + strings.Join(keywords, " "))
	for _, term := range visaTerms {
		if strings.Contains(haystack, term) {
			return models.CategoryVisa
		}
	}
	for _, term := range travelTerms {
		if strings.Contains(haystack, term) {
			return models.CategoryTravel
		}
	}
	return models.CategoryGeneral
}
