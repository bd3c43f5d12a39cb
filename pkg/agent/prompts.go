package agent

import (
	"fmt"
	"strings"

	"github.com/harun/roadscout/pkg/query"
	"github.com/harun/roadscout/pkg/route"
	"github.com/harun/roadscout/pkg/search"
)

const promptDateLayout = "January 2, 2006"

// carsPrompt embeds every offer unfiltered; ranking and selection are
// the model's job, not the search layer's.
func carsPrompt(q query.Query, offers []search.Offer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a car rental expert analyzing options for a rental in %s", q.Location)
	if !q.RoundTrip() {
		fmt.Fprintf(&b, " (one-way from %s to %s)", q.Origin, q.Location)
	}
	fmt.Fprintf(&b, " from %s to %s (%d days).\n\n",
		q.StartDate.Format(promptDateLayout), q.EndDate.Format(promptDateLayout), q.Days())

	b.WriteString("Available rental options:\n")
	for i, offer := range offers {
		fmt.Fprintf(&b, "%d. %s %s: $%.2f/day ($%.2f total)",
			i+1, offer.Provider, offer.VehicleClass, offer.Price, offer.TotalPrice)
		if offer.Rating > 0 {
			fmt.Fprintf(&b, ", rated %.1f/5", offer.Rating)
		}
		if len(offer.Features) > 0 {
			fmt.Fprintf(&b, ", features: %s", strings.Join(offer.Features, ", "))
		}
		if offer.SpecialOffer != "" {
			fmt.Fprintf(&b, " [%s]", offer.SpecialOffer)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Analyze these results and present the top 5 rental options by price and value.
For each option include the company, car type, price, features and any special offers.`)

	return b.String()
}

func routePrompt(q query.Query, info route.Info) string {
	var b strings.Builder

	if info.Local() {
		fmt.Fprintf(&b, "You are a route planning expert advising on a car rental based in %s", info.Destination)
		fmt.Fprintf(&b, " from %s to %s.\n\n",
			q.StartDate.Format(promptDateLayout), q.EndDate.Format(promptDateLayout))
		b.WriteString("This is a local rental with pickup and return at the same location.\n")
	} else {
		fmt.Fprintf(&b, "You are a route planning expert analyzing the journey from %s to %s.\n\n",
			info.Origin, info.Destination)
		fmt.Fprintf(&b, "Estimated driving distance: %d miles\n", info.DistanceMiles)
		fmt.Fprintf(&b, "Estimated driving time: %.1f hours\n", info.DriveTime.Hours())
		fmt.Fprintf(&b, "Main route: %s\n", info.MainRoute)
	}

	if len(info.Notes) > 0 {
		b.WriteString("\nJourney tips:\n")
		for _, note := range info.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	b.WriteString(`
Provide a route analysis covering travel time, major routes, suggested
travel times of day, and rest or fuel stops where relevant.`)

	return b.String()
}

// summaryPrompt combines whatever upstream sections are available.
// Missing sections are named so the model can acknowledge the gap.
func summaryPrompt(q query.Query, cars, routeRes Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a clear, concise summary for a car rental in %s from %s to %s.\n\n",
		q.Location, q.StartDate.Format(promptDateLayout), q.EndDate.Format(promptDateLayout))

	if cars.Failed() {
		b.WriteString("Rental options could not be retrieved.\n\n")
	} else {
		fmt.Fprintf(&b, "Rental options analysis:\n%s\n\n", cars.Content)
	}

	if routeRes.Failed() {
		b.WriteString("Route information could not be retrieved.\n\n")
	} else {
		fmt.Fprintf(&b, "Route analysis:\n%s\n\n", routeRes.Content)
	}

	b.WriteString(`In your summary:
1. Highlight the best overall value option
2. Highlight the most premium option
3. Highlight the most economical option
4. Summarize the route information in a user-friendly way
5. Provide 3-5 specific tips for this rental journey`)

	return b.String()
}
