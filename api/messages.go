package api

// Streaming progress messages emitted by result gatherers.

const (
	MsgTypeStartedHarvest  = "started_harvest"
	MsgTypeStartedContest  = "started_contest"
	MsgTypeResolvedBranch  = "resolved_branch"
	MsgTypeSkippedContest  = "skipped_contest"
	MsgTypeFinishedFile    = "finished_file"
	MsgTypeFinishedContest = "finished_contest"
	MsgTypeFinishedHarvest = "finished_harvest"
)

type Header struct {
	RunUuid string `json:"run_uuid"`
	MsgType string `json:"msg_type"`
}

type StartedHarvest struct {
	Header
	ContestCount int `json:"contest_count"`
}

func NewStartedHarvest(runUuid string, contestCount int) StartedHarvest {
	return StartedHarvest{
		Header:       Header{RunUuid: runUuid, MsgType: MsgTypeStartedHarvest},
		ContestCount: contestCount,
	}
}

type StartedContest struct {
	Header
	Contest string `json:"contest"`
	Repo    string `json:"repo"`
}

func NewStartedContest(runUuid string, contest string, repo string) StartedContest {
	return StartedContest{
		Header:  Header{RunUuid: runUuid, MsgType: MsgTypeStartedContest},
		Contest: contest,
		Repo:    repo,
	}
}

type ResolvedBranch struct {
	Header
	Contest string `json:"contest"`
	Branch  string `json:"branch"`
}

func NewResolvedBranch(runUuid string, contest string, branch string) ResolvedBranch {
	return ResolvedBranch{
		Header:  Header{RunUuid: runUuid, MsgType: MsgTypeResolvedBranch},
		Contest: contest,
		Branch:  branch,
	}
}

type SkippedContest struct {
	Header
	Contest string `json:"contest"`
	Stage   string `json:"stage"`
	Reason  string `json:"reason"`
}

func NewSkippedContest(runUuid string, contest string, stage string, reason string) SkippedContest {
	return SkippedContest{
		Header:  Header{RunUuid: runUuid, MsgType: MsgTypeSkippedContest},
		Contest: contest,
		Stage:   stage,
		Reason:  reason,
	}
}

type FinishedFile struct {
	Header
	Contest   string             `json:"contest"`
	Path      string             `json:"path"`
	Contracts []ContractBytecode `json:"contracts"`
}

func NewFinishedFile(runUuid string, contest string, path string, contracts []ContractBytecode) FinishedFile {
	return FinishedFile{
		Header:    Header{RunUuid: runUuid, MsgType: MsgTypeFinishedFile},
		Contest:   contest,
		Path:      path,
		Contracts: contracts,
	}
}

type FinishedContest struct {
	Header
	Contest   string `json:"contest"`
	Files     int    `json:"files"`
	Contracts int    `json:"contracts"`
}

func NewFinishedContest(runUuid string, contest string, files int, contracts int) FinishedContest {
	return FinishedContest{
		Header:    Header{RunUuid: runUuid, MsgType: MsgTypeFinishedContest},
		Contest:   contest,
		Files:     files,
		Contracts: contracts,
	}
}

type FinishedHarvest struct {
	Header
}

func NewFinishedHarvest(runUuid string) FinishedHarvest {
	return FinishedHarvest{
		Header: Header{RunUuid: runUuid, MsgType: MsgTypeFinishedHarvest},
	}
}
