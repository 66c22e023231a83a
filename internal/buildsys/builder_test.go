package buildsys

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCMakeBuilder_Build(t *testing.T) {
	defer func() { buildExecCommand = exec.CommandContext }()

	var gotName string
	var gotArgs []string
	buildExecCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		return exec.CommandContext(ctx, "true")
	}

	var out, errOut bytes.Buffer
	b := NewCMakeBuilder(t.TempDir(), "build", "Release", &out, &errOut)

	err := b.Build(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "cmake", gotName)
	assert.Equal(t, []string{"--build", "build", "--config", "Release"}, gotArgs)
}

func TestCMakeBuilder_BuildFailure(t *testing.T) {
	defer func() { buildExecCommand = exec.CommandContext }()

	buildExecCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}

	b := NewCMakeBuilder(t.TempDir(), "build", "Release", nil, nil)

	err := b.Build(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "build failed")
}
