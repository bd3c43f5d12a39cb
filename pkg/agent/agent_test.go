package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/roadscout/pkg/llm"
	"github.com/harun/roadscout/pkg/query"
	"github.com/harun/roadscout/pkg/route"
	"github.com/harun/roadscout/pkg/search"
)

type mockGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, cfg llm.GenerationConfig) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

type mockSearchClient struct {
	offers []search.Offer
	err    error
}

func (m *mockSearchClient) Search(ctx context.Context, q query.Query) ([]search.Offer, error) {
	return m.offers, m.err
}

type mockRouteClient struct {
	info route.Info
	err  error

	gotOrigin string
}

func (m *mockRouteClient) Route(ctx context.Context, origin, destination string, start, end time.Time) (route.Info, error) {
	m.gotOrigin = origin
	return m.info, m.err
}

func miamiQuery() query.Query {
	return query.Query{
		Location:  "Miami",
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		RawText:   "car rental in Miami from 2024-06-01 to 2024-06-05",
	}
}

func sampleOffers() []search.Offer {
	return []search.Offer{
		{Provider: "Enterprise", VehicleClass: "Economy car", Price: 40, TotalPrice: 160, Currency: "USD", Rating: 4.1, Features: []string{"Automatic"}},
		{Provider: "Hertz", VehicleClass: "SUV", Price: 75, TotalPrice: 300, Currency: "USD", Rating: 4.5, SpecialOffer: "Free upgrade"},
	}
}

func TestCarsAgentRunOk(t *testing.T) {
	gen := &mockGenerator{response: "Top options: Enterprise economy at $40/day."}
	agent := NewCarsAgent(&mockSearchClient{offers: sampleOffers()}, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, NameCars, result.Agent)
	assert.Equal(t, StatusOk, result.Status)
	assert.Equal(t, gen.response, result.Content)
	assert.Empty(t, result.Err)
	assert.Equal(t, 1, gen.calls)

	offers, ok := result.RawData.([]search.Offer)
	require.True(t, ok)
	assert.Len(t, offers, 2)
}

func TestCarsAgentPromptIncludesEveryOffer(t *testing.T) {
	gen := &mockGenerator{response: "analysis"}
	agent := NewCarsAgent(&mockSearchClient{offers: sampleOffers()}, gen, llm.GenerationConfig{}, zerolog.Nop())

	agent.Run(context.Background(), miamiQuery())

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Enterprise")
	assert.Contains(t, prompt, "Hertz")
	assert.Contains(t, prompt, "Free upgrade")
	assert.Contains(t, prompt, "Miami")
}

func TestCarsAgentNoOffersDegraded(t *testing.T) {
	gen := &mockGenerator{response: "unused"}
	agent := NewCarsAgent(&mockSearchClient{}, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, StatusDegraded, result.Status)
	assert.Contains(t, result.Content, "No rental offers")
	assert.Zero(t, gen.calls, "degraded result should not call the generator")
}

func TestCarsAgentSearchFailure(t *testing.T) {
	searchErr := &search.UnavailableError{Err: errors.New("navigation timeout")}
	gen := &mockGenerator{response: "unused"}
	agent := NewCarsAgent(&mockSearchClient{err: searchErr}, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, StatusFailed, result.Status)
	assert.True(t, result.Failed())
	assert.Contains(t, result.Err, "navigation timeout")
	assert.Zero(t, gen.calls)
}

func TestCarsAgentGenerationExhaustion(t *testing.T) {
	gen := &mockGenerator{err: &llm.UnavailableError{}}
	agent := NewCarsAgent(&mockSearchClient{offers: sampleOffers()}, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, 1, gen.calls)
}

func TestRouteAgentRoundTripUsesLocalInsights(t *testing.T) {
	routeClient := &mockRouteClient{info: route.Info{
		Origin:      "Miami",
		Destination: "Miami",
		Notes:       []string{"Round-trip rentals typically offer better daily rates"},
	}}
	gen := &mockGenerator{response: "Local rental advice."}
	agent := NewRouteAgent(routeClient, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, StatusOk, result.Status)
	assert.Empty(t, routeClient.gotOrigin, "round trips should request local insights")
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "local rental")
}

func TestRouteAgentOneWay(t *testing.T) {
	q := miamiQuery()
	q.Origin = "New York"
	q.Location = "Miami"

	routeClient := &mockRouteClient{info: route.Info{
		Origin:        "New York",
		Destination:   "Miami",
		DistanceMiles: 1280,
		DriveTime:     19 * time.Hour,
		MainRoute:     "I-95 S",
		Notes:         []string{"Plan your route with regular rest stops every 2-3 hours"},
	}}
	gen := &mockGenerator{response: "Take I-95 south."}
	agent := NewRouteAgent(routeClient, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), q)

	assert.Equal(t, StatusOk, result.Status)
	assert.Equal(t, "New York", routeClient.gotOrigin)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "I-95 S")
	assert.Contains(t, gen.prompts[0], "1280 miles")

	info, ok := result.RawData.(route.Info)
	require.True(t, ok)
	assert.False(t, info.Local())
}

func TestRouteAgentEmptyRouteDataDegraded(t *testing.T) {
	routeClient := &mockRouteClient{info: route.Info{}}
	gen := &mockGenerator{response: "unused"}
	agent := NewRouteAgent(routeClient, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, StatusDegraded, result.Status)
	assert.Contains(t, result.Content, "No route information")
	assert.Zero(t, gen.calls, "degraded result should not call the generator")
}

func TestRouteAgentCapabilityFailure(t *testing.T) {
	routeClient := &mockRouteClient{err: &route.UnavailableError{Err: errors.New("geocode request: unexpected status 503")}}
	gen := &mockGenerator{response: "unused"}
	agent := NewRouteAgent(routeClient, gen, llm.GenerationConfig{}, zerolog.Nop())

	result := agent.Run(context.Background(), miamiQuery())

	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Err, "503")
	assert.Zero(t, gen.calls)
}

func TestSummaryAgentBothFailedSkipsGeneration(t *testing.T) {
	gen := &mockGenerator{response: "unused"}
	agent := NewSummaryAgent(gen, llm.GenerationConfig{}, DefaultSummaryPolicy(), zerolog.Nop())

	cars := Result{Agent: NameCars, Status: StatusFailed, Err: "search offers: unavailable"}
	routeRes := Result{Agent: NameRoute, Status: StatusFailed, Err: "plan route: unavailable"}

	result := agent.Run(context.Background(), miamiQuery(), cars, routeRes)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Zero(t, gen.calls, "summary must not generate when both inputs failed")
}

func TestSummaryAgentDegradesOnPartialUpstream(t *testing.T) {
	gen := &mockGenerator{response: "Summary without route details."}
	agent := NewSummaryAgent(gen, llm.GenerationConfig{}, DefaultSummaryPolicy(), zerolog.Nop())

	cars := Result{Agent: NameCars, Status: StatusOk, Content: "Enterprise economy is the best value."}
	routeRes := Result{Agent: NameRoute, Status: StatusFailed, Err: "plan route: unavailable"}

	result := agent.Run(context.Background(), miamiQuery(), cars, routeRes)

	assert.Equal(t, StatusDegraded, result.Status)
	assert.Equal(t, 1, gen.calls)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Route information could not be retrieved")
	assert.Contains(t, gen.prompts[0], "Enterprise economy")
}

func TestSummaryAgentOkWhenBothOk(t *testing.T) {
	gen := &mockGenerator{response: "Full summary."}
	agent := NewSummaryAgent(gen, llm.GenerationConfig{}, DefaultSummaryPolicy(), zerolog.Nop())

	cars := Result{Agent: NameCars, Status: StatusOk, Content: "options"}
	routeRes := Result{Agent: NameRoute, Status: StatusOk, Content: "route"}

	result := agent.Run(context.Background(), miamiQuery(), cars, routeRes)

	assert.Equal(t, StatusOk, result.Status)
	assert.Equal(t, "Full summary.", result.Content)
}

func TestSummaryAgentPolicyDisabled(t *testing.T) {
	gen := &mockGenerator{response: "Summary."}
	policy := SummaryPolicy{DegradeOnUpstream: false}
	agent := NewSummaryAgent(gen, llm.GenerationConfig{}, policy, zerolog.Nop())

	cars := Result{Agent: NameCars, Status: StatusDegraded, Content: "no offers"}
	routeRes := Result{Agent: NameRoute, Status: StatusOk, Content: "route"}

	result := agent.Run(context.Background(), miamiQuery(), cars, routeRes)

	assert.Equal(t, StatusOk, result.Status)
}

func TestSummaryAgentGenerationFailure(t *testing.T) {
	gen := &mockGenerator{err: &llm.UnavailableError{}}
	agent := NewSummaryAgent(gen, llm.GenerationConfig{}, DefaultSummaryPolicy(), zerolog.Nop())

	cars := Result{Agent: NameCars, Status: StatusOk, Content: "options"}
	routeRes := Result{Agent: NameRoute, Status: StatusOk, Content: "route"}

	result := agent.Run(context.Background(), miamiQuery(), cars, routeRes)

	assert.Equal(t, StatusFailed, result.Status)
	assert.True(t, strings.Contains(result.Err, "generate summary"))
}
