package p2p2p

// Notes:
// - ExecRunner tests re-run the test binary as the child process
//   (TestHelperProcess), so no PlantUML or pdflatex install is needed.
// - They set an environment variable and cannot use t.Parallel().

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "P2P2P_TEST_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the child process for the
// ExecRunner tests: args after "--" are op/value pairs.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) > 0 {
		args = args[1:]
	}

	code := 0
	for i := 0; i+1 < len(args); i += 2 {
		switch op, val := args[i], args[i+1]; op {
		case "stdout":
			fmt.Fprint(os.Stdout, val)
		case "stderr":
			fmt.Fprint(os.Stderr, val)
		case "repeat":
			n, _ := strconv.Atoi(val)
			fmt.Fprint(os.Stdout, strings.Repeat("x", n))
		case "pwd":
			wd, _ := os.Getwd()
			fmt.Fprint(os.Stdout, filepath.Base(wd))
		case "exit":
			code, _ = strconv.Atoi(val)
		}
	}
	os.Exit(code)
}

func helperCommand(ops ...string) Command {
	return Command{
		Name: os.Args[0],
		Args: append([]string{"-test.run=TestHelperProcess", "--"}, ops...),
	}
}

// ---------------------------------------------------------------------------
// TestExecRunner - Real process execution
// ---------------------------------------------------------------------------

func TestExecRunner_Success(t *testing.T) {
	t.Setenv(helperEnv, "1")

	res, err := (&ExecRunner{}).Run(context.Background(), helperCommand("stdout", "hello", "stderr", "warn"))
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello", res.Stdout)
	assert.Equal(t, "warn", res.Stderr)
	assert.False(t, res.Truncated)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	t.Setenv(helperEnv, "1")

	res, err := (&ExecRunner{}).Run(context.Background(), helperCommand("stderr", "Syntax Error?", "exit", "3"))
	require.Error(t, err)
	require.NotNil(t, res, "result is returned alongside exit errors")

	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "Syntax Error?", res.Stderr)
	assert.Contains(t, err.Error(), "exited with status 3")
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	t.Setenv(helperEnv, "1")

	dir := t.TempDir()
	cmd := helperCommand("pwd", "_")
	cmd.Dir = dir

	res, err := (&ExecRunner{}).Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), res.Stdout)
}

func TestExecRunner_OutputCap(t *testing.T) {
	t.Setenv(helperEnv, "1")

	cmd := helperCommand("repeat", "100")
	cmd.MaxOutput = 10

	res, err := (&ExecRunner{}).Run(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 10), res.Stdout)
	assert.True(t, res.Truncated)
}

func TestExecRunner_StartFailure(t *testing.T) {
	t.Parallel()

	res, err := (&ExecRunner{}).Run(context.Background(), Command{Name: filepath.Join(t.TempDir(), "no-such-pdflatex")})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "starting")
}

// ---------------------------------------------------------------------------
// TestCappedBuffer - Capture limit
// ---------------------------------------------------------------------------

func TestCappedBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit         int
		writes        []string
		want          string
		wantTruncated bool
	}{
		{"under limit", 10, []string{"abc", "def"}, "abcdef", false},
		{"exactly at limit", 6, []string{"abc", "def"}, "abcdef", false},
		{"split write", 4, []string{"abc", "def"}, "abcd", true},
		{"writes after full", 3, []string{"abc", "def"}, "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := &cappedBuffer{limit: tt.limit}
			for _, w := range tt.writes {
				n, err := b.Write([]byte(w))
				require.NoError(t, err)
				assert.Equal(t, len(w), n, "writes always report full length")
			}
			assert.Equal(t, tt.want, b.String())
			assert.Equal(t, tt.wantTruncated, b.truncated)
		})
	}
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	cmd := Command{Name: "java", Args: []string{"-jar", "plantuml.jar", "-tpng"}}
	assert.Equal(t, "java -jar plantuml.jar -tpng", cmd.String())
}
