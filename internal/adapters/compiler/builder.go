package compiler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// Builder compiles the project with its own toolchain so artifacts are current
type Builder struct {
	projectRoot string
	toolchain   config.Toolchain
	debug       bool
	stream      io.Writer
	log         *slog.Logger
}

// NewBuilder creates a new project builder
func NewBuilder(cfg *config.RuntimeConfig, log *slog.Logger) *Builder {
	return &Builder{
		projectRoot: cfg.ProjectRoot,
		toolchain:   cfg.Toolchain,
		debug:       cfg.Debug,
		stream:      os.Stderr,
		log:         log.With("component", "Builder"),
	}
}

// Command returns the compile command for the project's toolchain
func (b *Builder) Command(ctx context.Context) (*exec.Cmd, error) {
	var cmd *exec.Cmd
	switch b.toolchain {
	case config.ToolchainFoundry:
		cmd = exec.CommandContext(ctx, "forge", "build")
	case config.ToolchainHardhat:
		cmd = exec.CommandContext(ctx, "npx", "hardhat", "compile")
	default:
		return nil, fmt.Errorf("no build toolchain detected in %s", b.projectRoot)
	}
	cmd.Dir = b.projectRoot
	return cmd, nil
}

// Build runs the compile step. In debug mode the compiler output is streamed
// through a PTY so it keeps its colors.
func (b *Builder) Build(ctx context.Context) error {
	cmd, err := b.Command(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	b.log.Debug("running build", "cmd", cmd.Args, "dir", cmd.Dir)

	if b.debug {
		err = b.streamOutput(cmd)
	} else {
		var output []byte
		output, err = cmd.CombinedOutput()
		if err != nil {
			err = fmt.Errorf("%w\nOutput: %s", err, string(output))
		}
	}

	duration := time.Since(start)
	if err != nil {
		b.log.Error("build failed", "error", err, "duration", duration)
		return fmt.Errorf("%s failed: %w", cmd.Args[0], err)
	}

	b.log.Debug("build completed successfully", "duration", duration)
	return nil
}

func (b *Builder) streamOutput(cmd *exec.Cmd) error {
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start pty: %w", err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	// Reading a PTY returns EIO once the child exits
	_, _ = io.Copy(b.stream, ptyFile)
	return cmd.Wait()
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactBuilder = (*Builder)(nil)
