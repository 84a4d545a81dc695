package natsgath

import (
	"github.com/nats-io/nats.go"

	"github.com/solharvest/harvester/api"
)

type natsGatherer struct {
	nc      *nats.Conn
	subject string
	runUuid string
}

func (s *natsGatherer) StartHarvest(contestCount int) {
	s.send(api.NewStartedHarvest(s.runUuid, contestCount))
}

func (s *natsGatherer) StartContest(contest string, repo string) {
	s.send(api.NewStartedContest(s.runUuid, contest, repo))
}

func (s *natsGatherer) ResolvedBranch(contest string, branch string) {
	s.send(api.NewResolvedBranch(s.runUuid, contest, branch))
}

func (s *natsGatherer) SkipContest(contest string, stage string, reason string) {
	s.send(api.NewSkippedContest(s.runUuid, contest, stage, reason))
}

func (s *natsGatherer) FinishFile(contest string, path string, contracts []api.ContractBytecode) {
	s.send(api.NewFinishedFile(s.runUuid, contest, path, contracts))
}

func (s *natsGatherer) FinishContest(contest string, files int, contracts int) {
	s.send(api.NewFinishedContest(s.runUuid, contest, files, contracts))
}

func (s *natsGatherer) FinishHarvest() {
	s.send(api.NewFinishedHarvest(s.runUuid))
}
