package profanity

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// installHint is appended to ErrToolNotFound.
const installHint = "install profanity2 from https://github.com/1inch/profanity2 or pass --profanity-path"

// ToolRunner executes the external tool and reports each stdout line.
type ToolRunner interface {
	Run(ctx context.Context, args []string, onLine func(string)) error
}

// Runner runs the tool as a child process.
type Runner struct {
	Path     string
	Progress io.Writer // receives the tool's stdout as it arrives, may be nil
	Log      *zap.Logger
}

// NewRunner creates a Runner for the executable at path.
func NewRunner(path string, progress io.Writer, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Path: path, Progress: progress, Log: log}
}

// Check verifies the executable can be found.
func (r *Runner) Check() (string, error) {
	resolved, err := exec.LookPath(r.Path)
	if err != nil {
		return "", fmt.Errorf("%w at %q: %s", ErrToolNotFound, r.Path, installHint)
	}
	return resolved, nil
}

// Run starts the tool and blocks until it exits or ctx ends. Cancelling ctx
// interrupts the child and returns ctx's error. A non-zero exit returns
// ErrToolFailed carrying stderr.
func (r *Runner) Run(ctx context.Context, args []string, onLine func(string)) error {
	path, err := r.Check()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = 3 * time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrToolFailed, err)
	}

	r.Log.Debug("starting tool", zap.String("path", path), zap.Strings("args", args))
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w at %q: %s", ErrToolNotFound, path, installHint)
		}
		return fmt.Errorf("%w: start: %v", ErrToolFailed, err)
	}

	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		line := sc.Text()
		if r.Progress != nil {
			fmt.Fprintln(r.Progress, line)
		}
		if onLine != nil {
			onLine(line)
		}
	}

	err = cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("%w: %v: %s", ErrToolFailed, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
