package harvest

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/solharvest/harvester/api"
	"github.com/solharvest/harvester/internal/github"
	"github.com/solharvest/harvester/internal/gitclone"
	"github.com/solharvest/harvester/internal/remap"
	"github.com/solharvest/harvester/internal/solc"
)

// SourceStrategy acquires a contest repository's Solidity sources and
// compiles them, returning per-file bytecode results. The two
// implementations cover the deployment modes: per-file fetch through
// the hosting API, and whole-repository clone.
type SourceStrategy interface {
	Harvest(ctx context.Context, owner string, repo string, branch string) ([]api.FileResult, error)
}

// DirectFetch pulls each Solidity blob through the hosting API and
// compiles it standalone. Files whose fetch, decode, or compile fails
// are dropped from the contest's result set individually.
type DirectFetch struct {
	gh        *github.Client
	compiler  *solc.Solc
	fileLimit int
}

func NewDirectFetch(gh *github.Client, compiler *solc.Solc, fileLimit int) *DirectFetch {
	if fileLimit < 1 {
		fileLimit = 1
	}
	return &DirectFetch{gh: gh, compiler: compiler, fileLimit: fileLimit}
}

func (d *DirectFetch) Harvest(ctx context.Context, owner string, repo string, branch string) ([]api.FileResult, error) {
	entries, err := d.gh.ListTree(ctx, owner, repo, branch)
	if err != nil {
		return nil, failAt(StageTree, err)
	}

	var mu sync.Mutex
	var results []api.FileResult

	// files within one contest are independent; a small pool keeps the
	// hosting API happy
	g := new(errgroup.Group)
	g.SetLimit(d.fileLimit)
	for _, entry := range entries {
		g.Go(func() error {
			result, ok := d.harvestFile(ctx, repo, entry)
			if ok {
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}

func (d *DirectFetch) harvestFile(ctx context.Context, repo string, entry github.TreeEntry) (api.FileResult, bool) {
	source, err := d.gh.BlobContent(ctx, entry.BlobURL)
	if err != nil {
		slog.Warn("dropping source file", "repo", repo, "path", entry.Path, "error", err)
		return api.FileResult{}, false
	}

	out, err := d.compiler.CompileSource(ctx, entry.Path, source)
	if err != nil {
		slog.Warn("compile failed for source file", "repo", repo, "path", entry.Path, "error", err)
		return api.FileResult{}, false
	}

	bytecodes, err := solc.ExtractBytecodes(out, entry.Path)
	if err != nil {
		if !errors.Is(err, solc.ErrNoBytecode) {
			slog.Warn("bytecode extraction failed", "repo", repo, "path", entry.Path, "error", err)
		}
		return api.FileResult{}, false
	}

	return api.FileResult{Path: entry.Path, Contracts: toAPI(bytecodes)}, true
}

// CloneStrategy clones the whole repository and compiles a fixed
// project root with its remapping file, mirroring a local framework
// build.
type CloneStrategy struct {
	cloner      *gitclone.Cloner
	compiler    *solc.Solc
	compileRoot string
	remapFile   string
}

func NewCloneStrategy(cloner *gitclone.Cloner, compiler *solc.Solc, compileRoot string, remapFile string) *CloneStrategy {
	return &CloneStrategy{
		cloner:      cloner,
		compiler:    compiler,
		compileRoot: compileRoot,
		remapFile:   remapFile,
	}
}

func (c *CloneStrategy) Harvest(ctx context.Context, owner string, repo string, branch string) ([]api.FileResult, error) {
	dir, err := c.cloner.Clone(ctx, owner, repo)
	if err != nil {
		return nil, failAt(StageTree, err)
	}

	var remappings []remap.Remapping
	remapPath := filepath.Join(dir, c.remapFile)
	if _, err := os.Stat(remapPath); err == nil {
		remappings, err = remap.Parse(remapPath)
		if err != nil {
			return nil, failAt(StageSource, err)
		}
	}

	out, err := c.compiler.CompileProject(ctx, filepath.Join(dir, c.compileRoot), remappings)
	if err != nil {
		return nil, failAt(StageCompiled, err)
	}

	fileKeys := make([]string, 0, len(out.Contracts))
	for key := range out.Contracts {
		fileKeys = append(fileKeys, key)
	}
	sort.Strings(fileKeys)

	var results []api.FileResult
	for _, key := range fileKeys {
		bytecodes, err := solc.ExtractBytecodes(out, key)
		if errors.Is(err, solc.ErrNoBytecode) {
			continue
		}
		if err != nil {
			return nil, failAt(StageExtracted, err)
		}
		results = append(results, api.FileResult{Path: key, Contracts: toAPI(bytecodes)})
	}
	return results, nil
}

func toAPI(bytecodes []solc.NamedBytecode) []api.ContractBytecode {
	out := make([]api.ContractBytecode, 0, len(bytecodes))
	for _, bc := range bytecodes {
		out = append(out, api.ContractBytecode{Name: bc.Name, Bytecode: bc.Bytecode})
	}
	return out
}
