// Package engine hands a release configuration to the external
// semantic-release engine. The record is written to a temporary JSON file
// and the engine is launched through npx with the packages the
// configuration needs.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
	"github.com/MyCarrier-DevOps/go-releaserc/internal/log"
)

// EnginePackage is the npm package providing the engine binary.
const EnginePackage = "semantic-release"

// configFileName is the name of the rendered record inside the temp dir.
const configFileName = "releaserc.json"

// ErrEngineFailed is returned when the engine process exits unsuccessfully.
var ErrEngineFailed = errors.New("release engine failed")

// Command describes one process invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logs and dry-run output.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Executor runs a command to completion.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, cmd Command) error

// Execute calls f(ctx, cmd).
func (f ExecutorFunc) Execute(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// OSExecutor runs commands with os/exec.
type OSExecutor struct{}

// Execute starts the process and waits for it. The process is killed when
// ctx is cancelled.
func (OSExecutor) Execute(ctx context.Context, cmd Command) error {
	path, err := exec.LookPath(cmd.Name)
	if err != nil {
		return fmt.Errorf("%s not found on PATH: %w", cmd.Name, err)
	}

	c := exec.CommandContext(ctx, path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	return c.Run()
}

// Options controls a single engine run.
type Options struct {
	// Dir is the repository the engine runs in. Defaults to the working
	// directory.
	Dir string
	// DryRun skips publishing. Passed as --dry-run.
	DryRun bool
	// NoCI disables the engine's CI environment check. Passed as --no-ci.
	NoCI bool
	// Env holds extra KEY=VALUE entries appended to the process environment.
	Env []string
	// Stdout and Stderr receive the engine's output. Default to the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Runner launches the engine.
type Runner struct {
	executor Executor
	npx      string
}

// NewRunner creates a Runner. A nil executor uses OSExecutor.
func NewRunner(executor Executor) *Runner {
	if executor == nil {
		executor = OSExecutor{}
	}
	return &Runner{executor: executor, npx: "npx"}
}

// Command builds the engine invocation for a record already written to
// configPath.
func (r *Runner) Command(cfg *config.Config, configPath string, opts Options) Command {
	args := []string{"--yes", "-p", EnginePackage}
	for _, pkg := range cfg.ExtraPackages() {
		args = append(args, "-p", pkg)
	}
	args = append(args, EnginePackage, "--extends", configPath)
	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	if opts.NoCI {
		args = append(args, "--no-ci")
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return Command{
		Name:   r.npx,
		Args:   args,
		Dir:    opts.Dir,
		Env:    append(os.Environ(), opts.Env...),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Run validates cfg, writes it to a temporary file and runs the engine
// against it. The temporary file is removed once the engine exits.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, opts Options) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "releaserc-")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	configPath := filepath.Join(dir, configFileName)
	if err := config.WriteFile(configPath, cfg, config.FormatJSON); err != nil {
		return err
	}

	cmd := r.Command(cfg, configPath, opts)
	logger := log.WithComponent("engine")
	logger.Info().
		Str("command", cmd.String()).
		Bool("dry_run", opts.DryRun).
		Msg("starting release engine")

	if err := r.executor.Execute(ctx, cmd); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrEngineFailed, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrEngineFailed, err)
	}

	logger.Info().Msg("release engine finished")
	return nil
}
