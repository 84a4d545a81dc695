package termgath

import (
	"fmt"
	"time"

	"github.com/solharvest/harvester/api"
)

type TerminalGatherer struct {
	StartedAt time.Time
}

func New() *TerminalGatherer { return &TerminalGatherer{StartedAt: time.Now()} }

func (t *TerminalGatherer) StartHarvest(contestCount int) {
	fmt.Printf("== Harvest started: %d contests ==\n", contestCount)
}

func (t *TerminalGatherer) StartContest(contest string, repo string) {
	fmt.Printf("-- %s (repo: %s) --\n", contest, repo)
}

func (t *TerminalGatherer) ResolvedBranch(contest string, branch string) {
	fmt.Printf("   %s: default branch %s\n", contest, branch)
}

func (t *TerminalGatherer) SkipContest(contest string, stage string, reason string) {
	fmt.Printf("   %s: skipped at %s: %s\n", contest, stage, reason)
}

func (t *TerminalGatherer) FinishFile(contest string, path string, contracts []api.ContractBytecode) {
	fmt.Printf("   %s: %s -> %d contracts\n", contest, path, len(contracts))
	for _, c := range contracts {
		fmt.Printf("      %s (%d bytes)\n", c.Name, len(c.Bytecode)/2)
	}
}

func (t *TerminalGatherer) FinishContest(contest string, files int, contracts int) {
	fmt.Printf("-- %s: %d files, %d contracts --\n", contest, files, contracts)
}

func (t *TerminalGatherer) FinishHarvest() {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	fmt.Printf("== Harvest finished in %s ==\n", dur)
}
