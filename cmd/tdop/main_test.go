package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdop/interpreter-go/pkg/driver"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv(driver.ConfigEnv, "")
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRunFilesShareOneSession(t *testing.T) {
	first := writeScript(t, "first.tdop", "func sq(n) return n * n; end\nx = 3;\n")
	second := writeScript(t, "second.tdop", "puts(sq(x));\n")

	res := runCLI(t, "", first, second)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "9.0\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRunFileMissing(t *testing.T) {
	res := runCLI(t, "", filepath.Join(t.TempDir(), "nope.tdop"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "nope.tdop")
	assert.Empty(t, res.stdout)
}

func TestRunFileErrorStopsWithDiagnostic(t *testing.T) {
	path := writeScript(t, "boom.tdop", "puts(\"start\");\nx = 1 / 0;\nputs(\"end\");\n")
	res := runCLI(t, "", path)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "start\n", res.stdout)
	assert.Contains(t, res.stderr, "DivisionByZero: "+path+":2:7")
	assert.Contains(t, res.stderr, "   2 | x = 1 / 0;\n     |       ^")
}

func TestRunFileReadsInput(t *testing.T) {
	path := writeScript(t, "ask.tdop", `n = input("n? "); puts(n * 2);`)
	res := runCLI(t, "21\n", path)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "n? 42.0\n", res.stdout)
}

func TestDebugDumpsToStderr(t *testing.T) {
	path := writeScript(t, "dbg.tdop", "x = 1 + 2;\n")
	res := runCLI(t, "", "--debug", path)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "IDENTIFIER")
	assert.Contains(t, res.stderr, "(= x (+ 1.0 2.0))")
	assert.Contains(t, res.stderr, "3.0")
}

func TestREPLEchoesExpressions(t *testing.T) {
	res := runCLI(t, "x = 1;\nx + 1;\n\"hi\";\nputs(x);\n")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "$$ $$ 2.0\n$$ \"hi\"\n$$ 1.0\n$$ \n", res.stdout)
}

func TestREPLContinuationLines(t *testing.T) {
	res := runCLI(t, "func f()\n  return 3;\nend\nf();\n")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "$$ .. .. $$ 3.0\n$$ \n", res.stdout)
}

func TestREPLErrorsDoNotEndSession(t *testing.T) {
	res := runCLI(t, "1 / 0;\nmissing;\nputs(\"still here\");\n")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "still here\n")
	assert.Contains(t, res.stderr, "DivisionByZero")
	assert.Contains(t, res.stderr, "UnboundVariable")
}

func TestREPLReportsIncompleteEntryAtEOF(t *testing.T) {
	res := runCLI(t, "while (true)\n")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "$$ .. \n", res.stdout)
	assert.Contains(t, res.stderr, "ParseError")
}

func TestREPLSkipsBlankLines(t *testing.T) {
	res := runCLI(t, "\n   \n2 * 2;\n")
	assert.Equal(t, "$$ $$ $$ 4.0\n$$ \n", res.stdout)
}

func TestREPLInputSharesStdin(t *testing.T) {
	res := runCLI(t, "n = input(\"? \");\n41\nn + 1;\n")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "$$ ? $$ 42.0\n$$ \n", res.stdout)
}

func TestConfigFileSetsPrompts(t *testing.T) {
	cfg := writeScript(t, "tdop.yml", "prompt: \"> \"\ncontinuation_prompt: \"| \"\ncolor: never\n")
	res := runCLI(t, "if (true)\n1;\nend\n", "--config", cfg)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "> | | > \n", res.stdout)
}

func TestConfigFromEnvironment(t *testing.T) {
	cfg := writeScript(t, "tdop.toml", "Prompt = \"% \"\n")
	t.Setenv(driver.ConfigEnv, cfg)
	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader("1;\n"), &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Equal(t, "% 1.0\n% \n", stdout.String())
}

func TestBadConfigOrLogLevel(t *testing.T) {
	cfg := writeScript(t, "bad.yml", "colour: never\n")
	res := runCLI(t, "", "--config", cfg)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "colour")

	res = runCLI(t, "", "--log-level", "loud")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "log level")
}

func TestUnknownFlag(t *testing.T) {
	res := runCLI(t, "", "--bogus")
	assert.Equal(t, 2, res.code)
}

func TestHelp(t *testing.T) {
	res := runCLI(t, "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "tdop")
	assert.Contains(t, res.stdout, "--log-level")
}

func TestColorFor(t *testing.T) {
	var buf bytes.Buffer
	colorFor(&buf, driver.ColorAlways).Fprint(&buf, "x")
	assert.Contains(t, buf.String(), "\x1b[31m")

	buf.Reset()
	colorFor(&buf, driver.ColorAuto).Fprint(&buf, "x")
	assert.Equal(t, "x", buf.String())
}
