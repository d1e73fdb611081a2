// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

// writeCases lays out a small document tree under a temp dir.
func writeCases(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a/det.yaml": `
name: det
op: det
rows:
  - ["1", "2"]
  - ["3", "4"]
`,
		"a/b/rank.yaml": `
name: rank
op: rank
rows:
  - ["1", "2"]
  - ["2", "4"]
`,
		"c/solve.yaml": `
name: solve
op: solve
rows:
  - ["2", "1"]
  - ["1", "3"]
rhs:
  - ["3"]
  - ["5"]
`,
		"c/ignored.json": `{"op": "det", "rows": [["1"]]}`,
	}
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	}

	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (Report, int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	var rep Report
	if stdout.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(stdout.Bytes(), &rep), stdout.String())
	}

	return rep, code, stderr.String()
}

func TestRun_BatchGlob(t *testing.T) {
	t.Parallel()

	dir := writeCases(t)
	rep, code, _ := runCLI(t, "", "-in", filepath.Join(dir, "**", "*.yaml"))
	require.Equal(t, exitOK, code)
	require.Len(t, rep.Results, 3)

	// lexical path order: a/b/rank, a/det, c/solve
	require.Equal(t, "rank", rep.Results[0].Name)
	require.Equal(t, "1", rep.Results[0].Scalar)
	require.Equal(t, "det", rep.Results[1].Name)
	require.Equal(t, "-2", rep.Results[1].Scalar)
	require.Equal(t, [][]string{{"4/5"}, {"7/5"}}, rep.Results[2].Matrix)
}

func TestRun_Overrides(t *testing.T) {
	t.Parallel()

	dir := writeCases(t)
	rep, code, _ := runCLI(t, "", "-in", filepath.Join(dir, "a", "det.yaml"), "-op", "inverse", "-inv", "ADJ")
	require.Equal(t, exitOK, code)
	require.Equal(t, "inverse", rep.Results[0].Op)
	require.Equal(t, [][]string{{"-2", "1"}, {"3/2", "-1/2"}}, rep.Results[0].Matrix)

	rep, code, _ = runCLI(t, "", "-in", filepath.Join(dir, "a", "det.yaml"), "-op", "det", "-domain", "expr", "-det", "berkowitz")
	require.Equal(t, exitOK, code)
	require.Equal(t, "expr", rep.Results[0].Domain)
	require.Equal(t, "-2", rep.Results[0].Scalar)
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	src := `
op = "rref"
rows = [["1", "2", "1", "1"], ["1", "2", "2", "-1"], ["2", "4", "0", "6"]]
`
	rep, code, _ := runCLI(t, src, "-format", "toml")
	require.Equal(t, exitOK, code)
	res := rep.Results[0]
	require.Equal(t, "stdin", res.Name)
	require.Equal(t, []int{0, 2}, res.Pivots)
	require.Equal(t, []string{"0", "0", "1", "-2"}, res.Matrix[1])
}

func TestRun_EigenAndCheck(t *testing.T) {
	t.Parallel()

	src := `{"op": "eigenvects", "rows": [["2", "1"], ["1", "2"]]}`
	rep, code, _ := runCLI(t, src)
	require.Equal(t, exitOK, code)
	eig := rep.Results[0].Eigen
	require.Len(t, eig, 2)
	require.Equal(t, Eigen{Value: "1", Mult: 1, Basis: [][][]string{{{"-1"}, {"1"}}}}, eig[0])

	src = `{"op": "eigenvals", "domain": "expr", "rows": [["1", "sqrt(2)"], ["sqrt(2)", "1"]]}`
	rep, code, _ = runCLI(t, src, "-check")
	require.Equal(t, exitOK, code)
	require.Equal(t, "ok", rep.Results[0].Check)

	src = `{"op": "det", "rows": [["1", "2", "3"], ["4", "5", "6"], ["7", "8", "10"]]}`
	rep, code, _ = runCLI(t, src, "-check", "-det", "lu")
	require.Equal(t, exitOK, code)
	require.Equal(t, "-3", rep.Results[0].Scalar)
	require.Equal(t, "ok", rep.Results[0].Check)
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		stdin string
		want  string
	}{
		{"missing rhs", `{"op": "solve", "rows": [["1"]]}`, "rhs"},
		{"unknown op", `{"op": "svd", "rows": [["1"]]}`, "unknown op"},
		{"unknown domain", `{"op": "det", "domain": "gf2", "rows": [["1"]]}`, "unknown domain"},
		{"singular", `{"op": "inverse", "rows": [["1", "2"], ["2", "4"]]}`, "singular"},
		{"bad entry", `{"op": "det", "rows": [["x"]]}`, "not a rational"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rep, code, _ := runCLI(t, tc.stdin)
			require.Equal(t, exitFailed, code)
			require.Contains(t, rep.Results[0].Error, tc.want)
		})
	}
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	_, code, _ := runCLI(t, "", "-nope")
	require.Equal(t, exitUsage, code)

	_, code, stderr := runCLI(t, "", "-in", filepath.Join(t.TempDir(), "*.yaml"))
	require.Equal(t, exitUsage, code)
	require.Contains(t, stderr, "no documents match")

	_, code, _ = runCLI(t, "", "-det", "laplace")
	require.Equal(t, exitUsage, code)

	_, code, _ = runCLI(t, "{", "-format", "json")
	require.Equal(t, exitUsage, code)
}

func TestRun_Metrics(t *testing.T) {
	t.Parallel()

	rep, code, _ := runCLI(t, `{"op": "rref", "rows": [["1", "2"], ["3", "4"]]}`, "-metrics")
	require.Equal(t, exitOK, code)
	require.Contains(t, rep.Metrics, `symla_operations_total{domain="rat",op="rref",status="ok"} 1`)
	require.Contains(t, rep.Metrics, `symla_pivots_total{assumed="false",op="RREF"} 2`)
}

func TestRun_YAMLFromEnvironment(t *testing.T) {
	t.Setenv("SYMLA_OUTPUT", "yaml")

	var stdout, stderr bytes.Buffer
	code := run(nil, strings.NewReader(`{"op": "det", "rows": [["5"]]}`), &stdout, &stderr)
	require.Equal(t, exitOK, code)

	var rep Report
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &rep))
	require.Equal(t, "5", rep.Results[0].Scalar)
}

func TestRun_Gzip(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-gzip"}, strings.NewReader(`{"op": "det", "rows": [["2", "0"], ["0", "3"]]}`), &stdout, &stderr)
	require.Equal(t, exitOK, code)

	zr, err := gzip.NewReader(&stdout)
	require.NoError(t, err)
	var rep Report
	require.NoError(t, sonic.ConfigStd.NewDecoder(zr).Decode(&rep))
	require.Equal(t, "6", rep.Results[0].Scalar)
}
