package harvest

import "github.com/solharvest/harvester/api"

// ResultGatherer receives harvest progress and results. Implementations
// stream to a terminal, a NATS subject, or an SQS queue.
type ResultGatherer interface {
	StartHarvest(contestCount int)

	StartContest(contest string, repo string)
	ResolvedBranch(contest string, branch string)
	SkipContest(contest string, stage string, reason string)

	FinishFile(contest string, path string, contracts []api.ContractBytecode)
	FinishContest(contest string, files int, contracts int)

	FinishHarvest()
}
