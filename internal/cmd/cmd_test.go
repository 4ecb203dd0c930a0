package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/parallel-recolor/internal/errors"
	"github.com/ironsheep/parallel-recolor/internal/imaging"
	"github.com/ironsheep/parallel-recolor/internal/recolor"
)

var testInfo = BuildInfo{Version: "1.0.0", BuildTime: "today", GitCommit: "abc123"}

// executeCommand runs a fresh command tree with args and returns captured stdout
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(testInfo)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeGreyPNG writes a uniformly grey PNG and returns its path
func writeGreyPNG(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})

	path := filepath.Join(t.TempDir(), "source.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand(testInfo)
	assert.Equal(t, "parallel-recolor", root.Use)

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, expected := range []string{"recolor", "power-sum", "serve", "version"} {
		assert.True(t, names[expected], "expected subcommand %q", expected)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "parallel-recolor 1.0.0")
	assert.Contains(t, out, "Build time: today")
	assert.Contains(t, out, "Git commit: abc123")
}

func TestVersionCommand_IgnoresBrokenConfig(t *testing.T) {
	_, err := executeCommand(t, "", "version", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
}

func TestPowerSumCommand(t *testing.T) {
	for _, strategy := range []string{"squaring", "unary"} {
		t.Run(strategy, func(t *testing.T) {
			out, err := executeCommand(t, "", "power-sum", "2", "100", "3", "50", "--strategy", strategy)
			require.NoError(t, err)
			assert.Equal(t, "1267651318126217093349291975625\n", out)
		})
	}
}

func TestPowerSumCommand_BoundedRunner(t *testing.T) {
	out, err := executeCommand(t, "", "power-sum", "10", "3", "5", "2", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, "1025\n", out)
}

func TestPowerSumCommand_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative power", []string{"power-sum", "--", "2", "-1", "3", "1"}},
		{"not a number", []string{"power-sum", "2", "1", "x", "1"}},
		{"unknown strategy", []string{"power-sum", "2", "1", "3", "1", "--strategy", "magic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err), "got %v", err)
		})
	}

	_, err := executeCommand(t, "", "power-sum", "2", "1")
	assert.Error(t, err, "wrong arity")
}

func TestRecolorCommand(t *testing.T) {
	source := writeGreyPNG(t, 9, 10)
	destination := filepath.Join(t.TempDir(), "out", "result.png")

	out, err := executeCommand(t, "", "recolor", source, destination, "--workers", "3")
	require.NoError(t, err)

	ms, err := strconv.ParseInt(strings.TrimSpace(out), 10, 64)
	require.NoError(t, err, "output should be elapsed milliseconds, got %q", out)
	assert.GreaterOrEqual(t, ms, int64(0))

	result, err := imaging.Decode(destination)
	require.NoError(t, err)
	assert.Equal(t, imaging.Pack(255, 0, 0), result.At(0, 0))
	for y := 0; y < 10; y++ {
		assert.Equal(t, imaging.Pack(138, 48, 108), result.At(8, y), "row %d", y)
	}
}

func TestRecolorCommand_JSONReport(t *testing.T) {
	source := writeGreyPNG(t, 6, 10)
	destination := filepath.Join(t.TempDir(), "result.png")

	out, err := executeCommand(t, "", "recolor", source, destination, "-w", "4", "--remainder-policy", "drop", "--json")
	require.NoError(t, err)

	var report recolor.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Workers)
	assert.Equal(t, "drop", report.RemainderPolicy)
	assert.Equal(t, 2, report.UnassignedRows)
	assert.Len(t, report.Strips, 4)
	assert.Equal(t, 6*8-1, report.TintedPixels)
}

func TestRecolorCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	source := writeGreyPNG(t, 4, 7)
	destination := filepath.Join(dir, "configured.png")
	cfgPath := filepath.Join(dir, "config.yaml")
	content := "recolor:\n" +
		"  source: " + source + "\n" +
		"  destination: " + destination + "\n" +
		"  workers: 7\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	out, err := executeCommand(t, "", "recolor", "--config", cfgPath, "--json")
	require.NoError(t, err)

	var report recolor.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 7, report.Workers)
	assert.FileExists(t, destination)
}

func TestRecolorCommand_Environment(t *testing.T) {
	t.Setenv("PARALLEL_RECOLOR_RECOLOR_REMAINDER_POLICY", "drop")
	source := writeGreyPNG(t, 3, 5)

	out, err := executeCommand(t, "", "recolor", source, filepath.Join(t.TempDir(), "env.png"), "--workers", "2", "--json")
	require.NoError(t, err)

	var report recolor.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "drop", report.RemainderPolicy)
	assert.Equal(t, 1, report.UnassignedRows)
}

func TestRecolorCommand_Errors(t *testing.T) {
	source := writeGreyPNG(t, 4, 4)
	destination := filepath.Join(t.TempDir(), "out.png")

	_, err := executeCommand(t, "", "recolor", source, destination, "--workers", "0")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err), "got %v", err)

	_, err = executeCommand(t, "", "recolor", filepath.Join(t.TempDir(), "missing.png"), destination)
	require.Error(t, err)
	assert.True(t, errors.IsIOFailure(err), "got %v", err)

	_, err = executeCommand(t, "", "recolor", source, filepath.Join(t.TempDir(), "out.xyz"))
	require.Error(t, err)
	assert.True(t, errors.IsIOFailure(err), "got %v", err)
}

func TestServeCommand(t *testing.T) {
	stdin := `{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n"

	out, err := executeCommand(t, stdin, "serve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"id":1`)
	assert.Contains(t, lines[1], `"image_recolor"`)
	assert.Contains(t, lines[1], `"power_sum"`)
}
