//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests. The tests talk to
// the SuperFaktura sandbox with credentials from a .env file.
type TestConfig struct {
	EnvFile   string
	SfapiPath string
	Verbose   bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		EnvFile:   os.Getenv("SFAPI_INTEGRATION_ENV_FILE"),
		SfapiPath: getSfapiPath(),
		Verbose:   os.Getenv("SFAPI_VERBOSE") == "true",
	}
}

// getSfapiPath determines the path to the sfapi binary.
func getSfapiPath() string {
	if path := os.Getenv("SFAPI_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../sfapi",
		"./sfapi",
		"../sfapi",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "sfapi"
}

// SkipIfMissingConfig skips the test when no sandbox credentials are configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.EnvFile == "" {
		t.Skip("SFAPI_INTEGRATION_ENV_FILE not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when the sfapi binary is not built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.SfapiPath); err != nil {
		t.Skipf("sfapi binary not found at %s, skipping integration test", config.SfapiPath)
	}
}

// CommandRunner runs sfapi commands against the sandbox.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an sfapi command with the sandbox credentials.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--env-file", runner.config.EnvFile}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.SfapiPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.SfapiPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertJSONOutput fails unless output is a JSON object and returns it.
func AssertJSONOutput(t *testing.T, output string) map[string]any {
	t.Helper()

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &decoded), "output is not a JSON object: %s", output)

	return decoded
}
