package harvest

import (
	"context"
	"fmt"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/solharvest/harvester/api"
	"github.com/solharvest/harvester/internal/artifact"
	"github.com/solharvest/harvester/internal/github"
	"github.com/solharvest/harvester/internal/listing"
)

type Config struct {
	// Owner is the hosting account that mirrors contest repositories.
	Owner string
	// Concurrency bounds how many contests are harvested at once.
	Concurrency int
}

// Harvester walks eligible contests through the pipeline: resolve the
// default branch, acquire and compile sources through the configured
// strategy, and report bytecode through the gatherer. A failure in one
// contest skips that contest only.
type Harvester struct {
	gh       *github.Client
	strategy SourceStrategy
	gath     ResultGatherer
	sink     *artifact.Store
	owner    string
	limit    int
	seen     mapset.Set[string]
}

// New builds a Harvester. sink may be nil to disable the on-disk
// artifact feed.
func New(gh *github.Client, strategy SourceStrategy, gath ResultGatherer, sink *artifact.Store, cfg Config) *Harvester {
	limit := cfg.Concurrency
	if limit < 1 {
		limit = 1
	}
	return &Harvester{
		gh:       gh,
		strategy: strategy,
		gath:     gath,
		sink:     sink,
		owner:    cfg.Owner,
		limit:    limit,
		seen:     mapset.NewSet[string](),
	}
}

// Run harvests every contest. Cancelling ctx abandons remaining stages
// at contest granularity; contests already finished keep their results.
func (h *Harvester) Run(ctx context.Context, contests []listing.Contest) error {
	h.gath.StartHarvest(len(contests))

	g := new(errgroup.Group)
	g.SetLimit(h.limit)
	for _, contest := range contests {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			h.harvestContest(ctx, contest)
			return nil
		})
	}
	_ = g.Wait()

	h.gath.FinishHarvest()
	return ctx.Err()
}

func (h *Harvester) harvestContest(ctx context.Context, contest listing.Contest) {
	label := contest.Label()

	repo, err := contest.RepoName()
	if err != nil {
		h.skip(label, StageDiscovered, err)
		return
	}

	// two contests can reference one repository; its sources are
	// harvested under one contest per run. The reservation is released
	// on failure so a sibling contest may still attempt the repo.
	if !h.seen.Add(repo) {
		slog.Info("repository already claimed by another contest this run", "contest", label, "repo", repo)
		h.gath.SkipContest(label, string(StageDiscovered),
			fmt.Sprintf("repository %s already claimed by another contest this run", repo))
		return
	}

	h.gath.StartContest(label, repo)

	branch, err := h.gh.DefaultBranch(ctx, h.owner, repo)
	if err != nil {
		h.seen.Remove(repo)
		h.skip(label, StageBranch, err)
		return
	}
	h.gath.ResolvedBranch(label, branch)

	files, err := h.strategy.Harvest(ctx, h.owner, repo, branch)
	if err != nil {
		h.seen.Remove(repo)
		h.skip(label, stageOf(err, StageSource), err)
		return
	}

	contracts := 0
	for _, f := range files {
		h.gath.FinishFile(label, f.Path, f.Contracts)
		contracts += len(f.Contracts)
	}

	if h.sink != nil {
		result := api.ContestResult{
			ContestID: contest.ID(),
			Slug:      label,
			Sponsor:   deref(contest.Sponsor),
			Repo:      h.owner + "/" + repo,
			Branch:    branch,
			Files:     files,
		}
		if err := h.sink.Save(result); err != nil {
			slog.Warn("failed to write artifact file", "contest", label, "error", err)
		}
	}

	h.gath.FinishContest(label, len(files), contracts)
}

func (h *Harvester) skip(contest string, stage Stage, err error) {
	slog.Warn("skipping contest", "contest", contest, "stage", string(stage), "error", err)
	h.gath.SkipContest(contest, string(stage), err.Error())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
