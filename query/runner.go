// Package query asks the player for its state directly. The query always
// runs in a short-lived child process: the scripting bridge can leave UI
// artifacts such as a Dock icon attached to the process that
// used it, and those must not live as long as the listener.
package query

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// DefaultTimeout bounds one child query.
const DefaultTimeout = 10 * time.Second

// Runner starts the child query process and waits for it.
type Runner struct {
	// Path and Args name the child command, normally this executable and
	// its hidden query subcommand.
	Path string
	Args []string
	Env  []string

	// Stdout receives the child's rendered block. Pass the same file the
	// parent writes to so blocks keep their order.
	Stdout io.Writer
	Stderr io.Writer

	Timeout time.Duration
}

// Run executes one query and blocks until the child exits. A child that is
// still running at the timeout is killed and nothing is written.
func (r *Runner) Run(ctx context.Context) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Path, r.Args...)
	cmd.Env = r.Env
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("query timed out after %v: %w", timeout, err)
		}
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}
