// Package query parses free-text car-rental requests into structured
// queries, e.g. "car rental in Miami from June 1st to June 5th".
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Query is a structured rental request. It is immutable once built.
type Query struct {
	// Location is the rental/destination city.
	Location string
	// Origin is the distinct pickup city for one-way trips. Empty when
	// the request names a single city (round trip / local rental).
	Origin string
	// StartDate is the pickup date (midnight UTC).
	StartDate time.Time
	// EndDate is the return date (midnight UTC).
	EndDate time.Time
	// RawText is the original request text.
	RawText string
}

// RoundTrip reports whether the rental starts and ends in the same place.
func (q Query) RoundTrip() bool {
	return q.Origin == "" || strings.EqualFold(q.Origin, q.Location)
}

// Days returns the rental length in days.
func (q Query) Days() int {
	return int(q.EndDate.Sub(q.StartDate).Hours() / 24)
}

// ParseError reports a malformed rental request. It is surfaced to the
// caller unchanged; nothing downstream runs when parsing fails.
type ParseError struct {
	RawText string
	Reason  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid rental request %q: %s", e.RawText, e.Reason)
}

var (
	isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)

	monthDateRe = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)

	inLocationRe = regexp.MustCompile(`(?i)\bin\s+([a-zA-Z][a-zA-Z .'-]*?)\s*(?:\bfrom\b|\bto\b|\bbetween\b|,|$)`)

	routeLocationRe = regexp.MustCompile(`(?i)\bfrom\s+([a-zA-Z][a-zA-Z .'-]*?)\s+to\s+([a-zA-Z][a-zA-Z .'-]*?)\s*(?:\bfrom\b|\bon\b|,|$)`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

type dateMatch struct {
	start, end int
	date       time.Time
}

// Parse builds a Query from a free-text rental request. Dates may be
// written as 2024-06-01 or as "June 1st"; when the year is omitted it
// defaults to now's year. The request must name a location and a date
// range with the pickup strictly before the return.
func Parse(raw string, now time.Time) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, &ParseError{RawText: raw, Reason: "request is empty"}
	}

	dates := extractDates(text, now.Year())
	if len(dates) < 2 {
		return Query{}, &ParseError{RawText: raw, Reason: "could not find pickup and return dates"}
	}

	start, end := dates[0].date, dates[1].date
	if !start.Before(end) {
		return Query{}, &ParseError{RawText: raw, Reason: "pickup date must be before return date"}
	}

	origin, location := extractLocations(stripDates(text, dates))
	if location == "" {
		return Query{}, &ParseError{RawText: raw, Reason: "could not find a rental location"}
	}

	return Query{
		Location:  location,
		Origin:    origin,
		StartDate: start,
		EndDate:   end,
		RawText:   raw,
	}, nil
}

// extractDates returns the first dates found in the text, in order of
// appearance, regardless of which of the two forms each one uses.
func extractDates(text string, defaultYear int) []dateMatch {
	var matches []dateMatch

	for _, m := range isoDateRe.FindAllStringSubmatchIndex(text, -1) {
		year, _ := strconv.Atoi(text[m[2]:m[3]])
		month, _ := strconv.Atoi(text[m[4]:m[5]])
		day, _ := strconv.Atoi(text[m[6]:m[7]])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		matches = append(matches, dateMatch{
			start: m[0],
			end:   m[1],
			date:  time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		})
	}

	for _, m := range monthDateRe.FindAllStringSubmatchIndex(text, -1) {
		monthName := strings.ToLower(text[m[2]:m[3]])
		month, ok := monthsByPrefix[monthName[:3]]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(text[m[4]:m[5]])
		if day < 1 || day > 31 {
			continue
		}
		year := defaultYear
		if m[6] >= 0 {
			year, _ = strconv.Atoi(text[m[6]:m[7]])
		}
		matches = append(matches, dateMatch{
			start: m[0],
			end:   m[1],
			date:  time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		})
	}

	// Order by position in the text: first date is pickup, second return.
	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[j].start < matches[i].start {
				matches[i], matches[j] = matches[j], matches[i]
			}
		}
	}

	return matches
}

// stripDates blanks out matched date substrings so that location
// extraction only sees place names.
func stripDates(text string, dates []dateMatch) string {
	out := []byte(text)
	for _, d := range dates {
		for i := d.start; i < d.end; i++ {
			out[i] = ' '
		}
	}
	return string(out)
}

// extractLocations finds the rental location, preferring the
// "in <city>" form; a "from <place> to <place>" form yields a distinct
// origin for one-way trips.
func extractLocations(text string) (origin, location string) {
	if m := inLocationRe.FindStringSubmatch(text); m != nil {
		return "", cleanLocation(m[1])
	}

	if m := routeLocationRe.FindStringSubmatch(text); m != nil {
		return cleanLocation(m[1]), cleanLocation(m[2])
	}

	return "", ""
}

func cleanLocation(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
