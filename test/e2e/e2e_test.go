package e2e_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binary string

func TestMain(m *testing.M) {
	// Build once instead of paying for `go run` in every test
	dir, err := os.MkdirTemp("", "jsonpeek-e2e")
	if err != nil {
		panic(err)
	}
	binary = filepath.Join(dir, "jsonpeek")
	if runtime.GOOS == "windows" {
		binary += ".exe"
	}

	build := exec.Command("go", "build", "-o", binary, "../..")
	if out, err := build.CombinedOutput(); err != nil {
		_ = os.RemoveAll(dir)
		panic("build failed: " + string(out))
	}

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// sample returns the absolute path of a fixture, so it still resolves when
// the binary runs from another working directory.
func sample(name string) string {
	path, err := filepath.Abs(filepath.Join("..", "..", "testdata", "samples", name))
	if err != nil {
		panic(err)
	}
	return path
}

// jsonpeek runs the binary with an isolated home and config directory.
func jsonpeek(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	home := t.TempDir()

	cmd := exec.Command(binary, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"XDG_DESKTOP_DIR="+filepath.Join(home, "Desktop"),
	)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func TestEndToEnd_SamplePathsAreAbsolute(t *testing.T) {
	path := sample("user.json")
	assert.True(t, filepath.IsAbs(path))
	assert.FileExists(t, path)

	// jsonpeek runs from a fresh temp directory, away from testdata.
	stdout, stderr, err := jsonpeek(t, "", "--no-log", path)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Result:")
	assert.NotContains(t, stderr, "does not exist")
}

func TestEndToEnd_AnalyzeUserSample(t *testing.T) {
	logDir := t.TempDir()

	stdout, stderr, err := jsonpeek(t, "", "--log-dir", logDir, sample("user.json"))
	require.NoError(t, err, stderr)

	wantRows := []string{
		"1\t| John Doe\t| name\n",
		"2\t| 30\t| age\n",
		"3\t| john.doe@example.com\t| email\n",
		"4\t| True\t| active\n",
		"5\t| True\t| verified\n",
		"6\t| 1200.5\t| score\n",
		"7\t| null\t| nickname\n",
		"8\t| [Object]\t| address\n",
		"9\t| [Array]\t| tags\n",
	}
	for _, row := range wantRows {
		assert.Contains(t, stdout, row)
	}
	assert.Contains(t, stdout, "The file contains 9 values; the 2 most frequent are:\n- True: 2\n- John Doe: 1\n")

	logs, err := filepath.Glob(filepath.Join(logDir, "json_*.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)

	content, err := os.ReadFile(logs[0])
	require.NoError(t, err)

	// The report block printed to the console appears unchanged in the log.
	start := strings.Index(stdout, "\nResult:")
	end := strings.Index(stdout, "\nLog file written:")
	require.True(t, start >= 0 && end > start)
	assert.Contains(t, string(content), stdout[start:end])
	assert.Contains(t, string(content), "Log generated by jsonpeek.")
}

func TestEndToEnd_UnicodeEscapes(t *testing.T) {
	stdout, stderr, err := jsonpeek(t, "", "--no-log", sample("escapes.json"))
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "1\t| 你好\t| greeting\n")
	assert.Contains(t, stdout, "2\t| 😀\t| emoji\n")
	assert.Contains(t, stdout, "3\t| café\t| cafe\n")
	assert.Contains(t, stdout, "4\t| café\t| plain\n")
	assert.Contains(t, stdout, "5\t| � then text\t| dangling\n")
}

func TestEndToEnd_Failures(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		stderr string
	}{
		{"malformed", "malformed.json", "Unable to parse the provided JSON content"},
		{"bad escape", "bad_escape.json", "Unicode decoding error"},
		{"array root", "array_root.json", "expected an object"},
		{"missing", "does_not_exist.json", "The specified file does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := jsonpeek(t, "", "--no-log", sample(tt.file))
			assert.Error(t, err)
			assert.Contains(t, stderr, tt.stderr)
			assert.NotContains(t, stdout, "Result:")
		})
	}
}

func TestEndToEnd_InteractiveSession(t *testing.T) {
	input := strings.Join([]string{
		sample("does_not_exist.json"),
		`"` + sample("malformed.json") + `"`,
		sample("user.json"),
		"Q",
	}, "\n") + "\n"

	stdout, stderr, err := jsonpeek(t, input, "--no-log")
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "The specified file does not exist, please enter another path.")
	assert.Contains(t, stdout, "Unable to parse the provided JSON content. Error message:")
	assert.Contains(t, stdout, "(line 4, column 3)")
	assert.Equal(t, 1, strings.Count(stdout, "Result:"))
}

func TestEndToEnd_DefaultLogDirIsDesktop(t *testing.T) {
	home := t.TempDir()
	desktop := filepath.Join(home, "Desktop")

	cmd := exec.Command(binary, sample("user.json"))
	cmd.Env = append(os.Environ(), "HOME="+home, "XDG_CONFIG_HOME="+filepath.Join(home, ".config"), "XDG_DESKTOP_DIR="+desktop)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	logs, err := filepath.Glob(filepath.Join(desktop, "json_*.log"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestEndToEnd_NewJSONThenAnalyze(t *testing.T) {
	folder := t.TempDir()
	input := strings.Join([]string{
		"2", folder, "created",
		"1", "title", "hello",
		"2", "draft", "false",
		"3", "views", "12",
		"4",
	}, "\n") + "\n"

	_, stderr, err := jsonpeek(t, input, "new")
	require.NoError(t, err, stderr)

	created := filepath.Join(folder, "created.json")
	stdout, stderr, err := jsonpeek(t, "", "--no-log", created)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "1\t| hello\t| title\n")
	assert.Contains(t, stdout, "2\t| False\t| draft\n")
	assert.Contains(t, stdout, "3\t| 12\t| views\n")
}

func TestEndToEnd_Guide(t *testing.T) {
	for _, arg := range []string{"guide", "-easyhelp"} {
		stdout, _, err := jsonpeek(t, "", arg)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Three steps to get started:")
	}
}

func TestEndToEnd_Help(t *testing.T) {
	stdout, _, err := jsonpeek(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--log-dir")
	assert.Contains(t, stdout, "--no-log")
	assert.Contains(t, stdout, "--markdown")
	assert.Contains(t, stdout, "--top")
	assert.Contains(t, stdout, "guide")
	assert.Contains(t, stdout, "new")
}
