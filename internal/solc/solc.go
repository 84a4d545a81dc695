package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/solharvest/harvester/internal/remap"
)

// RunFunc executes the compiler binary with the given arguments and
// standard-json payload on stdin, returning its stdout.
type RunFunc func(ctx context.Context, args []string, stdin []byte) ([]byte, error)

// Solc wraps the Solidity compiler executable. The compiler itself is a
// black box: this adapter only shapes its input and reads its output.
type Solc struct {
	path    string
	run     RunFunc
	timeout time.Duration
}

// New builds an adapter for the binary at path. timeout bounds each
// invocation; the via-IR pipeline can hang on pathological inputs, so
// a run without a limit stalls its worker slot forever.
func New(path string, timeout time.Duration) *Solc {
	if path == "" {
		path = "solc"
	}
	s := &Solc{path: path, timeout: timeout}
	s.run = s.execRun
	return s
}

// NewWithRunner builds an adapter around a custom runner; tests use it
// to stub the compiler out. A zero timeout means no limit.
func NewWithRunner(run RunFunc, timeout time.Duration) *Solc {
	return &Solc{path: "solc", run: run, timeout: timeout}
}

func (s *Solc) execRun(ctx context.Context, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, s.path, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("solc failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// CompileSource compiles a single named source text with default
// settings.
func (s *Solc) CompileSource(ctx context.Context, key string, source string) (*Output, error) {
	in := defaultInput()
	in.Sources[key] = Source{Content: source}
	return s.compile(ctx, in)
}

// CompileProject compiles every Solidity file under root through the
// via-IR pipeline, resolving imports with the given remappings. Sources
// are keyed by their path relative to root; remapped targets outside
// root are read from disk by the compiler, which standard-json only
// permits for explicitly allowed paths.
func (s *Solc) CompileProject(ctx context.Context, root string, remappings []remap.Remapping) (*Output, error) {
	in := defaultInput()
	in.Settings.ViaIR = true
	for _, r := range remappings {
		in.Settings.Remappings = append(in.Settings.Remappings, r.String())
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sol") {
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		in.Sources[filepath.ToSlash(rel)] = Source{Content: string(data)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect sources under %s: %w", root, err)
	}
	if len(in.Sources) == 0 {
		return nil, fmt.Errorf("no solidity sources under %s", root)
	}

	allowed := []string{root}
	for _, r := range remappings {
		allowed = append(allowed, r.Path)
	}
	args := []string{"--base-path", root, "--allow-paths", strings.Join(allowed, ",")}
	return s.compile(ctx, in, args...)
}

func (s *Solc) compile(ctx context.Context, in Input, extraArgs ...string) (*Output, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode compiler input: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := append([]string{"--standard-json"}, extraArgs...)
	raw, err := s.run(ctx, args, payload)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("solc timed out after %s: %w", s.timeout, context.DeadlineExceeded)
		}
		return nil, err
	}

	var out Output
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode compiler output: %w", err)
	}
	for _, d := range out.Errors {
		if d.Severity == "error" {
			return nil, fmt.Errorf("solc: %s", d.String())
		}
	}
	return &out, nil
}
