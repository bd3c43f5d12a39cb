package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harun/roadscout/pkg/query"
)

const kayakBaseURL = "https://www.kayak.com/cars"

var locationJunkRe = regexp.MustCompile(`[^\w\s-]`)

// KayakURL builds a Kayak car-rental search URL for the query, sorted
// by price ascending. One-way trips use the "<from>-to-<to>" location
// form.
func KayakURL(q query.Query) string {
	location := sanitizeLocation(q.Location)
	if !q.RoundTrip() {
		location = fmt.Sprintf("%s-to-%s", sanitizeLocation(q.Origin), location)
	}

	return fmt.Sprintf("%s/%s/%s/%s?sort=price_a",
		kayakBaseURL,
		location,
		q.StartDate.Format("2006-01-02"),
		q.EndDate.Format("2006-01-02"))
}

// sanitizeLocation turns a free-form place name into a Kayak URL slug.
func sanitizeLocation(loc string) string {
	cleaned := locationJunkRe.ReplaceAllString(loc, "")
	cleaned = strings.ToLower(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), "-")
	cleaned = strings.Trim(cleaned, "-")

	if cleaned == "" {
		return "united-states"
	}
	return cleaned
}
