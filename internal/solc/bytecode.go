package solc

import (
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// ErrNoBytecode signals that compilation succeeded but no contract
// under the requested file key produced linked bytecode. It is an
// empty result, not a failure.
var ErrNoBytecode = errors.New("no contracts produced bytecode")

// NamedBytecode pairs a contract name with its hex-encoded deploy
// bytecode.
type NamedBytecode struct {
	Name     string
	Bytecode string
}

// ExtractBytecodes collects (contract name, hex bytecode) pairs for the
// contracts registered under fileKey. Contracts whose bytecode is an
// unlinked placeholder contribute nothing. Results are ordered by
// contract name.
func ExtractBytecodes(out *Output, fileKey string) ([]NamedBytecode, error) {
	contracts, ok := out.Contracts[fileKey]
	if !ok {
		return nil, ErrNoBytecode
	}

	names := make([]string, 0, len(contracts))
	for name := range contracts {
		names = append(names, name)
	}
	sort.Strings(names)

	var result []NamedBytecode
	for _, name := range names {
		bc := contracts[name].EVM.Bytecode
		if !bc.Linked() {
			continue
		}
		raw, err := hex.DecodeString(strings.TrimPrefix(bc.Object, "0x"))
		if err != nil {
			continue
		}
		result = append(result, NamedBytecode{
			Name:     name,
			Bytecode: hex.EncodeToString(raw),
		})
	}
	if len(result) == 0 {
		return nil, ErrNoBytecode
	}
	return result, nil
}
