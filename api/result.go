package api

// ContractBytecode is one compiled contract paired with its fully linked
// deploy bytecode, hex-encoded without a 0x prefix.
type ContractBytecode struct {
	Name     string `json:"name"`
	Bytecode string `json:"bytecode"`
}

// FileResult groups the contracts recovered from one source file. Path is
// the file's path relative to the repository root.
type FileResult struct {
	Path      string             `json:"path"`
	Contracts []ContractBytecode `json:"contracts"`
}

// ContestResult is the final harvest output for a single contest.
type ContestResult struct {
	ContestID int          `json:"contest_id"`
	Slug      string       `json:"slug"`
	Sponsor   string       `json:"sponsor"`
	Repo      string       `json:"repo"`
	Branch    string       `json:"branch"`
	Files     []FileResult `json:"files"`
}
