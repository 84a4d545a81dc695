package solc_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solharvest/harvester/internal/remap"
	"github.com/solharvest/harvester/internal/solc"
)

// fakeCompiler returns a runner that hands the decoded standard-json
// input to inspect and replies with the given raw output.
func fakeCompiler(t *testing.T, output string, inspect func(in solc.Input, args []string)) solc.RunFunc {
	return func(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
		require.Equal(t, "--standard-json", args[0])
		var in solc.Input
		require.NoError(t, json.Unmarshal(stdin, &in))
		if inspect != nil {
			inspect(in, args)
		}
		return []byte(output), nil
	}
}

func TestCompileSource(t *testing.T) {
	output := `{"contracts":{"src/Token.sol":{
		"Token":{"evm":{"bytecode":{"object":"0xdeadbeef"}}},
		"Helper":{"evm":{"bytecode":{"object":"6001"}}}
	}}}`

	var seen solc.Input
	s := solc.NewWithRunner(fakeCompiler(t, output, func(in solc.Input, args []string) {
		seen = in
	}), 0)

	out, err := s.CompileSource(context.Background(), "src/Token.sol", "contract Token {}")
	require.NoError(t, err)

	require.Equal(t, "Solidity", seen.Language)
	require.Equal(t, "contract Token {}", seen.Sources["src/Token.sol"].Content)
	require.Equal(t, []string{"evm.bytecode"}, seen.Settings.OutputSelection["*"]["*"])

	bytecodes, err := solc.ExtractBytecodes(out, "src/Token.sol")
	require.NoError(t, err)
	require.Equal(t, []solc.NamedBytecode{
		{Name: "Helper", Bytecode: "6001"},
		{Name: "Token", Bytecode: "deadbeef"},
	}, bytecodes)
}

func TestCompileErrorDiagnostic(t *testing.T) {
	output := `{"errors":[
		{"severity":"warning","message":"unused variable"},
		{"severity":"error","formattedMessage":"ParserError: expected ';'"}
	]}`

	s := solc.NewWithRunner(fakeCompiler(t, output, nil), 0)
	_, err := s.CompileSource(context.Background(), "src/Broken.sol", "contract {")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ParserError")
}

func TestCompileWarningsPass(t *testing.T) {
	output := `{"errors":[{"severity":"warning","message":"unused variable"}],
		"contracts":{"a.sol":{"A":{"evm":{"bytecode":{"object":"6001"}}}}}}`

	s := solc.NewWithRunner(fakeCompiler(t, output, nil), 0)
	out, err := s.CompileSource(context.Background(), "a.sol", "contract A {}")
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)
}

func TestExtractBytecodesSkipsUnlinked(t *testing.T) {
	out := &solc.Output{Contracts: map[string]map[string]solc.Contract{
		"src/Vault.sol": {
			"Vault": {EVM: solc.EVM{Bytecode: solc.Bytecode{
				Object: "6001__$8f9c2d1b3a$__6002",
			}}},
			"Pool": {EVM: solc.EVM{Bytecode: solc.Bytecode{
				Object: "6002",
				LinkReferences: map[string]map[string][]solc.LinkReference{
					"lib/Math.sol": {"Math": {{Start: 2, Length: 20}}},
				},
			}}},
		},
	}}

	_, err := solc.ExtractBytecodes(out, "src/Vault.sol")
	require.ErrorIs(t, err, solc.ErrNoBytecode)
}

func TestExtractBytecodesMissingFileKey(t *testing.T) {
	out := &solc.Output{Contracts: map[string]map[string]solc.Contract{}}
	_, err := solc.ExtractBytecodes(out, "src/Nothing.sol")
	require.ErrorIs(t, err, solc.ErrNoBytecode)
}

func TestCompileProject(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Token.sol"), []byte("contract Token {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "Lib.sol"), []byte("library Lib {}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("docs"), 0644))

	remappings := []remap.Remapping{{Name: "@oz/", Path: "/deps/openzeppelin/"}}

	output := `{"contracts":{"Token.sol":{"Token":{"evm":{"bytecode":{"object":"6001"}}}}}}`
	s := solc.NewWithRunner(fakeCompiler(t, output, func(in solc.Input, args []string) {
		require.True(t, in.Settings.ViaIR)
		require.Equal(t, []string{"@oz/=/deps/openzeppelin/"}, in.Settings.Remappings)

		require.Len(t, in.Sources, 2)
		require.Equal(t, "contract Token {}", in.Sources["Token.sol"].Content)
		require.Equal(t, "library Lib {}", in.Sources["sub/Lib.sol"].Content)

		require.Equal(t, []string{
			"--standard-json",
			"--base-path", root,
			"--allow-paths", root + ",/deps/openzeppelin/",
		}, args)
	}), 0)

	out, err := s.CompileProject(context.Background(), root, remappings)
	require.NoError(t, err)

	bytecodes, err := solc.ExtractBytecodes(out, "Token.sol")
	require.NoError(t, err)
	require.Equal(t, []solc.NamedBytecode{{Name: "Token", Bytecode: "6001"}}, bytecodes)
}

func TestCompileTimeout(t *testing.T) {
	// a compiler stuck in the optimizer only stops when the deadline
	// cancels its context
	s := solc.NewWithRunner(func(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}, 20*time.Millisecond)

	_, err := s.CompileSource(context.Background(), "src/Token.sol", "contract Token {}")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCompileProjectEmptyRoot(t *testing.T) {
	s := solc.NewWithRunner(func(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
		t.Fatal("compiler must not run without sources")
		return nil, nil
	}, 0)

	_, err := s.CompileProject(context.Background(), t.TempDir(), nil)
	require.Error(t, err)
}
