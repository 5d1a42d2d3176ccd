// Command driftwatch synthesizes per-day telemetry for a fixed event
// catalog, establishes a statistical baseline from the synthetic
// history, and then interactively scores freshly generated live
// batches against that baseline.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/michellecs268/driftwatch/internal/adapters/artifact"
	app "github.com/michellecs268/driftwatch/internal/app"
	"github.com/michellecs268/driftwatch/internal/config"
	"github.com/michellecs268/driftwatch/internal/domain/model"
	"github.com/michellecs268/driftwatch/internal/domain/synth"
	"github.com/michellecs268/driftwatch/pkg/logger"
	"github.com/michellecs268/driftwatch/pkg/metrics"
)

const (
	positionalArgs = 3

	bannerWidth = 74

	metricsReadHeaderTimeout = 5 * time.Second
)

func usage() {
	os.Stderr.WriteString(`Usage: driftwatch <eventsFile> <statsFile> <days>

  eventsFile   event catalog source (name:kind:min:max:weight records)
  statsFile    statistics source for the historical batch (name:mean:stddev records)
  days         number of days of history to synthesize

Configuration is read from DRIFTWATCH_* environment variables and the
optional YAML file named by DRIFTWATCH_CONFIG.
`)
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
		}
	}()

	// Root context with cancel on SIGINT/SIGTERM so a blocked prompt
	// read terminates the loop cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "fatal", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logger.Get()

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != positionalArgs {
		usage()
		return fmt.Errorf("expected %d arguments, got %d", positionalArgs, flag.NArg())
	}
	eventsFile := flag.Arg(0)
	statsFile := flag.Arg(1)
	days, err := strconv.Atoi(flag.Arg(2))
	if err != nil || days < 1 {
		return errors.New("days must be a positive integer")
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr)
	}

	printBanner(os.Stdout, "Initializing Events and Statistics...")
	catalog, err := artifact.LoadCatalog(eventsFile)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	stats, err := artifact.LoadStats(statsFile)
	if err != nil {
		return fmt.Errorf("load statistics: %w", err)
	}
	if err := catalog.MatchStats(stats); err != nil {
		return err
	}
	fmt.Println("Initialization success!")

	printCatalog(os.Stdout, catalog)
	printStats(os.Stdout, catalog, stats)

	var synthOpts []synth.Option
	if cfg.RandomSeed != 0 {
		synthOpts = append(synthOpts, synth.WithSeed(cfg.RandomSeed))
	}

	engine := app.New(catalog,
		app.WithLogger(log),
		app.WithSynthesizer(synth.New(synthOpts...)),
		app.WithThresholdMultiplier(cfg.ThresholdMultiplier),
		app.WithArtifactFiles(cfg.LogsFile, cfg.BaselineFile, cfg.StatsFile, cfg.LiveLogsFile),
	)

	printBanner(os.Stdout, "Activity Engine and the Logs")
	if err := engine.EstablishBaseline(ctx, stats, days); err != nil {
		return fmt.Errorf("establish baseline: %w", err)
	}

	printBanner(os.Stdout, "Alert Engine")
	return engine.Run(ctx)
}

// startMetricsServer exposes the custom registry on addr. Failures are
// logged, not fatal; the pipeline works without the endpoint.
func startMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Get().Warn(ctx, "metrics server stopped", logger.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	logger.Get().Info(ctx, "metrics endpoint enabled", logger.String("addr", addr))
}

func printBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

func printCatalog(w io.Writer, catalog *model.Catalog) {
	printBanner(w, "EVENTS DATA")
	for _, name := range catalog.Names() {
		def, _ := catalog.Get(name)
		fmt.Fprintf(w, "%-15s: kind=%s min=%v max=%v weight=%d\n", name, def.Kind, def.Min, def.Max, def.Weight)
	}
}

func printStats(w io.Writer, catalog *model.Catalog, stats map[string]model.EventStatistic) {
	printBanner(w, "STATISTICS DATA")
	for _, name := range catalog.Names() {
		st := stats[name]
		fmt.Fprintf(w, "%-15s: mean=%v stddev=%v\n", name, st.Mean, st.StdDev)
	}
}
