package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v3"

	"github.com/solharvest/harvester/internal/artifact"
	"github.com/solharvest/harvester/internal/config"
	"github.com/solharvest/harvester/internal/environment"
	"github.com/solharvest/harvester/internal/gatherer/natsgath"
	"github.com/solharvest/harvester/internal/github"
	"github.com/solharvest/harvester/internal/gitclone"
	"github.com/solharvest/harvester/internal/harvest"
	"github.com/solharvest/harvester/internal/listing"
	"github.com/solharvest/harvester/internal/solc"
	"github.com/solharvest/harvester/internal/termgath"
	"github.com/solharvest/harvester/sqsgath"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.TimeOnly,
	})))

	cmd := &cli.Command{
		Name:  "harvester",
		Usage: "harvest deployable bytecode from open audit contests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "harvester.toml",
				Usage: "path to the TOML settings file",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "source acquisition mode: fetch or clone",
			},
			&cli.StringFlag{
				Name:  "listing",
				Usage: "contest listing URL",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "only harvest contests with public code access",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "contests harvested in parallel",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if mode := cmd.String("mode"); mode != "" {
		cfg.Mode = mode
	}
	if listingURL := cmd.String("listing"); listingURL != "" {
		cfg.ListingURL = listingURL
	}
	if cmd.Bool("strict") {
		cfg.StrictEligibility = true
	}
	if n := cmd.Int("concurrency"); n > 0 {
		cfg.Concurrency = int(n)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	env := environment.ReadEnvConfig()
	token, err := env.RequireGithubToken()
	if err != nil {
		return err
	}

	timeout := time.Duration(cfg.RequestTimeoutS) * time.Second

	contests, err := fetchContests(ctx, cfg.ListingURL, timeout)
	if err != nil {
		// an unreadable listing is reported but does not crash the
		// process; the run simply has nothing to harvest
		slog.Error("failed to extract contest listing", "url", cfg.ListingURL, "error", err)
		contests = nil
	}

	now := time.Now()
	if cfg.StrictEligibility {
		contests = listing.FilterEligible(contests, now)
	} else {
		contests = listing.FilterActive(contests, now)
	}
	slog.Info("contest listing filtered", "eligible", len(contests), "strict", cfg.StrictEligibility)

	gh := github.NewClient(github.ClientConfig{
		Token:         token,
		Timeout:       timeout,
		RetryAttempts: cfg.RetryAttempts,
	})
	compiler := solc.New(cfg.SolcPath, time.Duration(cfg.CompileTimeoutS)*time.Second)

	var strategy harvest.SourceStrategy
	switch cfg.Mode {
	case config.ModeClone:
		cloner := gitclone.New(cfg.CloneDir, gitclone.GitRun,
			time.Duration(cfg.CloneTimeoutS)*time.Second)
		strategy = harvest.NewCloneStrategy(cloner, compiler, cfg.CompileRoot, cfg.RemappingFile)
	default:
		strategy = harvest.NewDirectFetch(gh, compiler, cfg.FileConcurrency)
	}

	runUuid := uuid.New().String()
	gath, err := selectGatherer(env, runUuid)
	if err != nil {
		return err
	}

	sink, err := artifact.NewStore(cfg.OutputDir)
	if err != nil {
		return err
	}

	h := harvest.New(gh, strategy, gath, sink, harvest.Config{
		Owner:       cfg.Owner,
		Concurrency: cfg.Concurrency,
	})
	return h.Run(ctx, contests)
}

// selectGatherer picks the result stream: SQS when a response queue is
// configured, NATS when a server is configured, terminal otherwise.
func selectGatherer(env *environment.EnvConfig, runUuid string) (harvest.ResultGatherer, error) {
	if env.ResSqsURL != "" {
		return sqsgath.NewSqsResultGatherer(runUuid, env.ResSqsURL), nil
	}
	if env.NatsURL != "" {
		nc, err := nats.Connect(env.NatsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		return natsgath.New(nc, runUuid, env.NatsSubject), nil
	}
	return termgath.New(), nil
}

// fetchContests downloads the listing page and extracts its contest
// records. The listing endpoint is public; no auth header is sent.
func fetchContests(ctx context.Context, url string, timeout time.Duration) ([]listing.Contest, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing page: %w", err)
	}

	return listing.ExtractContests(string(body))
}
