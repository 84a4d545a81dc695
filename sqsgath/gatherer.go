package sqsgath

import (
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/solharvest/harvester/api"
)

type sqsResultGatherer struct {
	sqsClient *sqs.Client
	queueUrl  string
	runUuid   string
}

func (s *sqsResultGatherer) StartHarvest(contestCount int) {
	s.send(api.NewStartedHarvest(s.runUuid, contestCount))
}

func (s *sqsResultGatherer) StartContest(contest string, repo string) {
	s.send(api.NewStartedContest(s.runUuid, contest, repo))
}

func (s *sqsResultGatherer) ResolvedBranch(contest string, branch string) {
	s.send(api.NewResolvedBranch(s.runUuid, contest, branch))
}

func (s *sqsResultGatherer) SkipContest(contest string, stage string, reason string) {
	s.send(api.NewSkippedContest(s.runUuid, contest, stage, reason))
}

func (s *sqsResultGatherer) FinishFile(contest string, path string, contracts []api.ContractBytecode) {
	s.send(api.NewFinishedFile(s.runUuid, contest, path, contracts))
}

func (s *sqsResultGatherer) FinishContest(contest string, files int, contracts int) {
	s.send(api.NewFinishedContest(s.runUuid, contest, files, contracts))
}

func (s *sqsResultGatherer) FinishHarvest() {
	s.send(api.NewFinishedHarvest(s.runUuid))
}
