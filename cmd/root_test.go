package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gohalstead/internal/scanner"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = "# comment\ndef add(a, b):\n    return a + b\n"

// runCLI 以给定参数执行一次根命令，返回标准输出、标准错误和错误。
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(normalizeArgs(append(args, "--no-prompt", "--no-color")))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestNormalizeArgs(t *testing.T) {
	got := normalizeArgs([]string{"-b", "-il", "in.txt", "-ol=out.txt", "-i", "x.py", "--", "-il"})
	want := []string{"-b", "--input-list", "in.txt", "--output-list=out.txt", "-i", "x.py", "--", "-il"}
	assert.Equal(t, want, got)
}

func TestSingleFileToCSV(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, filepath.Join(dir, "lib-1.2.3", "add.py"), sampleSource)
	output := filepath.Join(dir, "reports", "add.csv")

	_, _, err := runCLI(t, "-i", input, "-o", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(string(content), "\n")
	assert.Equal(t, "Section,Metric,Value", lines[0])
	assert.Contains(t, string(content), "LOC Metrics,Comment Lines,1")
	assert.Contains(t, string(content), "Grade,")
}

func TestSingleFileToConsole(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, filepath.Join(dir, "add.py"), sampleSource)

	stdout, _, err := runCLI(t, "-i", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Final Score:")
	assert.Contains(t, stdout, "Grade:")
}

func TestSingleFileErrors(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t)
	assert.ErrorIs(t, err, errNoInput)

	missing := filepath.Join(dir, "missing.py")
	_, _, err = runCLI(t, "-i", missing)
	require.Error(t, err)
	assert.Equal(t, "the input file '"+missing+"' does not exist", err.Error())
}

func TestBatchErrors(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, "-b")
	assert.ErrorIs(t, err, scanner.ErrInputListRequired)

	inputs := writeFile(t, filepath.Join(dir, "inputs.txt"), "a.py\nb.py\n")
	outputs := writeFile(t, filepath.Join(dir, "outputs.txt"), "a.csv\n")
	_, _, err = runCLI(t, "-b", "-il", inputs, "-ol", outputs)
	assert.True(t, errors.Is(err, scanner.ErrListLengthMismatch))
}

func TestBatchCombinedReport(t *testing.T) {
	dir := isolate(t)
	first := writeFile(t, filepath.Join(dir, "Q1_2024-03-31", "one.py"), sampleSource)
	second := writeFile(t, filepath.Join(dir, "two.js"), "let x = 1; // one\n")
	missing := filepath.Join(dir, "gone.py")
	inputs := writeFile(t, filepath.Join(dir, "inputs.txt"), strings.Join([]string{first, missing, second}, "\n"))
	combined := filepath.Join(dir, "combined.csv")

	_, stderr, err := runCLI(t, "-b", "-il", inputs, "-o", combined)
	require.NoError(t, err)
	assert.Contains(t, stderr, "does not exist")

	content, err := os.ReadFile(combined)
	require.NoError(t, err)
	text := string(content)
	assert.True(t, strings.HasPrefix(text, "Filepath,Filename,Date,Version,Section,Metric,Value\n"))
	assert.Contains(t, text, "2024-03-31")
	assert.Contains(t, text, "two.js")
	assert.NotContains(t, text, "gone.py")
}

func TestBatchPerFileReportsAndHistory(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, filepath.Join(dir, "plotly-2.0.0", "one.py"), sampleSource)
	inputs := writeFile(t, filepath.Join(dir, "inputs.txt"), input+"\n")
	report := filepath.Join(dir, "out", "one.txt")
	outputs := writeFile(t, filepath.Join(dir, "outputs.txt"), report+"\n")
	dsn := filepath.Join(dir, "results.db")

	_, _, err := runCLI(t, "-b", "-il", inputs, "-ol", outputs, "--store", "sqlite", "--store-dsn", dsn)
	require.NoError(t, err)

	content, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "Code Analysis Report"))

	stdout, _, err := runCLI(t, "history", filepath.ToSlash(input), "--store", "sqlite", "--store-dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2.0.0")
}

func TestBatchStoresDuplicatePaths(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, filepath.Join(dir, "one.py"), sampleSource)
	inputs := writeFile(t, filepath.Join(dir, "inputs.txt"), input+"\n"+input+"\n")
	dsn := filepath.Join(dir, "results.db")

	_, stderr, err := runCLI(t, "-b", "-il", inputs, "--store", "sqlite", "--store-dsn", dsn)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "failed to store results")

	stdout, _, err := runCLI(t, "history", filepath.ToSlash(input), "--store", "sqlite", "--store-dsn", dsn)
	require.NoError(t, err)
	fingerprint := strconv.FormatUint(xxhash.Sum64String(sampleSource), 16)
	assert.Equal(t, 2, strings.Count(stdout, fingerprint))
}

func TestHistoryRequiresStore(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "history", "a.py")
	assert.ErrorIs(t, err, errStoreRequired)
}

func TestScanDirectory(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "src", "main.go"), "// entry\npackage main\n")
	writeFile(t, filepath.Join(dir, "src", "notes.txt"), "ignored\n")

	stdout, _, err := runCLI(t, "scan", filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "main.go")
	assert.NotContains(t, stdout, "notes.txt")
}

func TestLanguageCommand(t *testing.T) {
	isolate(t)
	stdout, _, err := runCLI(t, "language")
	require.NoError(t, err)
	for _, name := range []string{"Python", "JavaScript", "TypeScript", "Go"} {
		assert.Contains(t, stdout, name)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gohalstead version test\n", stdout)
}
