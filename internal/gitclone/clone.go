package gitclone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

var (
	// ErrAccessDenied marks clones rejected for authentication or
	// authorization reasons, typically a private contest repository.
	ErrAccessDenied = errors.New("repository access denied")
	// ErrPathConflict marks a clone target occupied by something that
	// is not a directory.
	ErrPathConflict = errors.New("clone path conflict")
)

// RunFunc executes git with the given arguments in dir and returns the
// combined output.
type RunFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// GitRun is the default RunFunc, invoking the git binary.
func GitRun(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Cloner maintains an on-disk cache of repository checkouts keyed by
// repository name. The cache is append-only: an existing checkout is
// reused as-is with no freshness check.
type Cloner struct {
	baseDir string
	run     RunFunc
	timeout time.Duration
	locks   *xsync.MapOf[string, *sync.Mutex]
}

// New builds a Cloner. timeout bounds each clone invocation; zero
// means no limit.
func New(baseDir string, run RunFunc, timeout time.Duration) *Cloner {
	return &Cloner{
		baseDir: baseDir,
		run:     run,
		timeout: timeout,
		locks:   xsync.NewMapOf[string, *sync.Mutex](),
	}
}

// Clone ensures a checkout of owner/repo (with submodules) exists under
// the base directory and returns its path. Concurrent clones of the
// same repository are serialized so a half-written checkout is never
// reused.
func (c *Cloner) Clone(ctx context.Context, owner string, repo string) (string, error) {
	mu, _ := c.locks.LoadOrStore(repo, &sync.Mutex{})
	mu.Lock()
	defer mu.Unlock()

	target := filepath.Join(c.baseDir, repo)
	if info, err := os.Stat(target); err == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("%s: %w", target, ErrPathConflict)
		}
		return target, nil
	}

	if err := os.MkdirAll(c.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create clone directory: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
	out, err := c.run(ctx, c.baseDir, "clone", "--recurse-submodules", url, target)
	if err != nil {
		// release the partially written checkout so a later attempt
		// does not mistake it for a complete one
		_ = os.RemoveAll(target)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("clone of %s/%s timed out after %s: %w",
				owner, repo, c.timeout, context.DeadlineExceeded)
		}
		return "", classify(err, out, owner, repo)
	}
	return target, nil
}

func classify(err error, out []byte, owner string, repo string) error {
	msg := string(out)
	switch {
	case strings.Contains(msg, "Authentication failed"),
		strings.Contains(msg, "could not read Username"),
		strings.Contains(msg, "Permission denied"),
		strings.Contains(msg, "Repository not found"):
		return fmt.Errorf("clone of %s/%s: %w", owner, repo, ErrAccessDenied)
	default:
		return fmt.Errorf("failed to clone %s/%s: %w: %s", owner, repo, err, strings.TrimSpace(msg))
	}
}
