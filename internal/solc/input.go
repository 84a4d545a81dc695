package solc

// Standard-json compiler input, as accepted by solc --standard-json.

type Input struct {
	Language string            `json:"language"`
	Sources  map[string]Source `json:"sources"`
	Settings Settings          `json:"settings"`
}

type Source struct {
	Content string `json:"content"`
}

type Settings struct {
	Remappings      []string                       `json:"remappings,omitempty"`
	Optimizer       *Optimizer                     `json:"optimizer,omitempty"`
	ViaIR           bool                           `json:"viaIR,omitempty"`
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

type Optimizer struct {
	Enabled bool `json:"enabled"`
	Runs    int  `json:"runs"`
}

func defaultInput() Input {
	return Input{
		Language: "Solidity",
		Sources:  map[string]Source{},
		Settings: Settings{
			OutputSelection: map[string]map[string][]string{
				"*": {"*": {"evm.bytecode"}},
			},
		},
	}
}
