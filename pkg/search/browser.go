package search

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/harun/roadscout/internal/tracing"
	"github.com/harun/roadscout/pkg/query"
)

// BrowserConfig configures the headless Kayak scraper.
type BrowserConfig struct {
	// ControlURL is a remote CDP endpoint (e.g. a Browserbase wss URL).
	// Empty launches a local headless Chrome.
	ControlURL string
	// ResultTimeout bounds the wait for the results list to render.
	ResultTimeout time.Duration
}

// BrowserClient scrapes Kayak car-rental results with a headless
// browser. The browser is shared across searches; each search gets its
// own page.
type BrowserClient struct {
	browser       *rod.Browser
	launcher      *launcher.Launcher
	resultTimeout time.Duration
	logger        zerolog.Logger
}

const defaultResultTimeout = 60 * time.Second

// Kayak renders results into rows tagged with a result ID.
const resultRowSelector = `div[data-resultid]`

// NewBrowserClient launches (or connects to) a browser and returns a
// ready client. Callers own Close.
func NewBrowserClient(cfg BrowserConfig, logger zerolog.Logger) (*BrowserClient, error) {
	c := &BrowserClient{
		resultTimeout: cfg.ResultTimeout,
		logger:        logger,
	}
	if c.resultTimeout <= 0 {
		c.resultTimeout = defaultResultTimeout
	}

	controlURL := cfg.ControlURL
	if controlURL == "" {
		c.launcher = launcher.New().Headless(true)
		url, err := c.launcher.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		if c.launcher != nil {
			c.launcher.Kill()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	c.browser = browser
	return c, nil
}

// Close disconnects from the browser and kills a locally launched one.
func (c *BrowserClient) Close() error {
	err := c.browser.Close()
	if c.launcher != nil {
		c.launcher.Kill()
	}
	return err
}

// Search loads the Kayak results page for the query and extracts the
// rendered offers. An empty page yields zero offers with a nil error;
// navigation and rendering failures yield an UnavailableError.
func (c *BrowserClient) Search(ctx context.Context, q query.Query) ([]Offer, error) {
	logger := tracing.LoggerFromContext(ctx, c.logger)

	url := KayakURL(q)
	logger.Info().Str("url", url).Msg("Loading Kayak results")

	page, err := c.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("create page: %w", err)}
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(c.resultTimeout)

	if err := page.Navigate(url); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("navigate: %w", err)}
	}
	if err := page.WaitLoad(); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("wait load: %w", err)}
	}

	// Result rows render after the initial load; wait for the first one.
	if _, err := page.Element(resultRowSelector); err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("results did not render: %w", err)}
	}

	rows, err := page.Elements(resultRowSelector)
	if err != nil {
		return nil, &UnavailableError{Err: fmt.Errorf("extract rows: %w", err)}
	}

	offers := make([]Offer, 0, len(rows))
	for _, row := range rows {
		text, err := row.Text()
		if err != nil {
			continue
		}
		if offer, ok := parseOfferText(text, pickupLocation(q), q.Days()); ok {
			offers = append(offers, offer)
		}
	}

	logger.Info().Int("offers", len(offers)).Msg("Kayak extraction completed")
	return offers, nil
}

var (
	dailyPriceRe = regexp.MustCompile(`\$\s?(\d+(?:\.\d{1,2})?)\s*/\s*day`)
	anyPriceRe   = regexp.MustCompile(`\$\s?(\d+(?:\.\d{1,2})?)`)
	ratingRe     = regexp.MustCompile(`(\d\.\d)\s*(?:/\s*5)?`)
)

// parseOfferText extracts an offer from the visible text of one result
// row. Kayak's markup churns constantly, so this works off text shape
// instead of CSS classes: first line is the supplier, a known class
// word identifies the vehicle class, and prices are dollar amounts.
func parseOfferText(text, pickup string, days int) (Offer, bool) {
	lines := strings.Split(text, "\n")

	offer := Offer{
		Currency:       "USD",
		PickupLocation: pickup,
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if offer.Provider == "" && !strings.ContainsAny(line, "$0123456789") {
			offer.Provider = line
			continue
		}
		for _, class := range vehicleClasses {
			if strings.Contains(strings.ToLower(line), strings.ToLower(class)) {
				offer.VehicleClass = class
				break
			}
		}
	}

	if m := dailyPriceRe.FindStringSubmatch(text); m != nil {
		offer.Price, _ = strconv.ParseFloat(m[1], 64)
	} else if m := anyPriceRe.FindStringSubmatch(text); m != nil {
		offer.Price, _ = strconv.ParseFloat(m[1], 64)
	}

	if m := ratingRe.FindStringSubmatch(text); m != nil {
		offer.Rating, _ = strconv.ParseFloat(m[1], 64)
	}

	if offer.Provider == "" || offer.Price <= 0 {
		return Offer{}, false
	}

	if days < 1 {
		days = 1
	}
	offer.TotalPrice = offer.Price * float64(days)

	return offer, true
}
