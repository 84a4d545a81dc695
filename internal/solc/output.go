package solc

import (
	"encoding/hex"
	"strings"
)

// Standard-json compiler output. Contracts is keyed by source file key,
// then by contract name.
type Output struct {
	Errors    []Diagnostic                   `json:"errors"`
	Contracts map[string]map[string]Contract `json:"contracts"`
}

type Diagnostic struct {
	Severity         string `json:"severity"`
	Type             string `json:"type"`
	Message          string `json:"message"`
	FormattedMessage string `json:"formattedMessage"`
}

func (d Diagnostic) String() string {
	if d.FormattedMessage != "" {
		return d.FormattedMessage
	}
	return d.Message
}

type Contract struct {
	EVM EVM `json:"evm"`
}

type EVM struct {
	Bytecode Bytecode `json:"bytecode"`
}

// Bytecode is the compiler's bytecode object: either concrete hex, or
// an unlinked placeholder still referencing library addresses.
type Bytecode struct {
	Object         string                                `json:"object"`
	LinkReferences map[string]map[string][]LinkReference `json:"linkReferences"`
}

type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// Linked reports whether the object is fully linked bytecode. Unlinked
// objects carry library placeholders (non-hex characters) or pending
// link references.
func (b Bytecode) Linked() bool {
	if b.Object == "" {
		return false
	}
	if len(b.LinkReferences) > 0 {
		return false
	}
	_, err := hex.DecodeString(strings.TrimPrefix(b.Object, "0x"))
	return err == nil
}
