// Package buildsys invokes the project's build system so baseline
// measurements run against a binary built from the requested revision.
package buildsys

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Builder triggers a full rebuild of the benchmark binaries.
type Builder interface {
	Build(ctx context.Context) error
}

// buildExecCommand allows mocking in tests.
var buildExecCommand = exec.CommandContext

// CMakeBuilder implements Builder using 'cmake --build'.
type CMakeBuilder struct {
	// Dir is the directory the build runs in (the source checkout).
	Dir string
	// BuildDir is the cmake binary directory, relative to Dir.
	BuildDir string
	// Config is the build configuration, e.g. "Release".
	Config string
	// Stdout and Stderr receive the build tool's output.
	Stdout io.Writer
	Stderr io.Writer
}

func NewCMakeBuilder(dir, buildDir, config string, stdout, stderr io.Writer) *CMakeBuilder {
	return &CMakeBuilder{Dir: dir, BuildDir: buildDir, Config: config, Stdout: stdout, Stderr: stderr}
}

func (b *CMakeBuilder) Build(ctx context.Context) error {
	args := []string{"--build", b.BuildDir, "--config", b.Config}
	cmd := buildExecCommand(ctx, "cmake", args...)
	cmd.Dir = b.Dir
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("build failed (cmake --build %s): %w", b.BuildDir, err)
	}
	return nil
}
