package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harun/roadscout/internal/config"
	"github.com/harun/roadscout/internal/logger"
	"github.com/harun/roadscout/pkg/agent"
	"github.com/harun/roadscout/pkg/llm"
	"github.com/harun/roadscout/pkg/orchestrator"
	"github.com/harun/roadscout/pkg/route"
	"github.com/harun/roadscout/pkg/search"
)

var planCmd = &cobra.Command{
	Use:   "plan <request>",
	Short: "Run a rental request and print the report",
	Long: `Plan runs one rental request through the agents and prints the
resulting report. Example:

  roadscout plan "car rental in Miami from June 1st to June 5th"`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader(cfgFile).Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	o, cleanup, err := buildOrchestrator(cfg, log.Logger)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := o.ProcessRentalRequest(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printReport(cmd, report)
	return nil
}

// buildOrchestrator assembles the full agent stack from configuration.
// The returned cleanup releases the browser when browser search is
// configured.
func buildOrchestrator(cfg *config.Config, log zerolog.Logger) (*orchestrator.Orchestrator, func(), error) {
	factory := &llm.ProviderFactory{}
	providers := make([]llm.Provider, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		provider, err := factory.NewProvider(llm.AuthProfile{
			Provider: llm.ProviderID(pc.Name),
			APIKey:   pc.APIKey(),
			Model:    pc.Model,
		})
		if err != nil {
			// A provider without a key drops out of the fallback order.
			log.Warn().Err(err).Str("provider", pc.Name).Msg("Skipping provider")
			continue
		}
		providers = append(providers, provider)
	}

	gateway, err := llm.NewGateway(providers, log)
	if err != nil {
		return nil, nil, fmt.Errorf("build gateway: %w", err)
	}

	cleanup := func() {}
	var searchClient search.Client
	if cfg.Search.Mode == "browser" {
		browserClient, err := search.NewBrowserClient(search.BrowserConfig{
			ControlURL:    cfg.Search.ControlURL,
			ResultTimeout: time.Duration(cfg.Search.ResultTimeoutSeconds) * time.Second,
		}, log)
		if err != nil {
			return nil, nil, fmt.Errorf("build browser client: %w", err)
		}
		searchClient = browserClient
		cleanup = func() { _ = browserClient.Close() }
	} else {
		searchClient = search.NewCatalogClient(log)
	}

	geocoder := route.NewNominatimGeocoder(cfg.Route.NominatimURL, cfg.Route.UserAgent, 0)
	routeClient := route.NewEstimator(geocoder, log)

	genCfg := llm.GenerationConfig{
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
	}
	policy := agent.SummaryPolicy{DegradeOnUpstream: cfg.Summary.DegradeOnUpstream}

	carsAgent := agent.NewCarsAgent(searchClient, gateway, genCfg, log)
	routeAgent := agent.NewRouteAgent(routeClient, gateway, genCfg, log)
	summaryAgent := agent.NewSummaryAgent(gateway, genCfg, policy, log)

	timeouts := orchestrator.Timeouts{
		Search:   cfg.Timeouts.SearchTimeout(),
		Route:    cfg.Timeouts.RouteTimeout(),
		Generate: cfg.Timeouts.GenerateTimeout(),
	}

	return orchestrator.NewOrchestrator(carsAgent, routeAgent, summaryAgent, timeouts, log), cleanup, nil
}

func printReport(cmd *cobra.Command, report orchestrator.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Report %s\n", report.ID)
	fmt.Fprintf(out, "Rental in %s, %s to %s\n",
		report.Query.Location,
		report.Query.StartDate.Format("2006-01-02"),
		report.Query.EndDate.Format("2006-01-02"))
	if !report.Query.RoundTrip() {
		fmt.Fprintf(out, "One-way from %s\n", report.Query.Origin)
	}

	printSection(out, "Rental Options", report.Cars)
	printSection(out, "Route Analysis", report.Route)
	printSection(out, "Summary", report.Summary)
}

var sectionRule = strings.Repeat("-", 60)

func printSection(out io.Writer, title string, result agent.Result) {
	fmt.Fprintf(out, "\n%s\n%s [%s]\n%s\n", sectionRule, title, result.Status, sectionRule)
	if result.Failed() {
		fmt.Fprintf(out, "unavailable: %s\n", result.Err)
		return
	}
	fmt.Fprintln(out, result.Content)
}
