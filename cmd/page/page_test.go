package page

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/html-checker/internal/validator"
	"github.com/scan-io-git/html-checker/pkg/shared/config"
	cmderrors "github.com/scan-io-git/html-checker/pkg/shared/errors"
)

func TestValidatePageArgs(t *testing.T) {
	tmpDir := t.TempDir()
	inputFile := filepath.Join(tmpDir, "locations.txt")
	require.NoError(t, os.WriteFile(inputFile, []byte("index.html\n"), 0644))

	tests := []struct {
		name    string
		options RunOptionsPage
		args    []string
		wantErr string
	}{
		{
			name:    "Valid locations",
			options: RunOptionsPage{Format: "log"},
			args:    []string{"index.html", "https://example.org/"},
		},
		{
			name:    "Valid input file",
			options: RunOptionsPage{Format: "json", InputFile: inputFile},
		},
		{
			name:    "Valid xss",
			options: RunOptionsPage{Format: "sarif", Xss: "512k"},
			args:    []string{"index.html"},
		},
		{
			name:    "Nothing to validate",
			options: RunOptionsPage{Format: "log"},
			wantErr: "either 'input-file' flag or at least one location must be specified",
		},
		{
			name:    "Input file and locations",
			options: RunOptionsPage{Format: "log", InputFile: inputFile},
			args:    []string{"index.html"},
			wantErr: "you cannot use an 'input-file' flag and locations at the same time",
		},
		{
			name:    "Input file is a directory",
			options: RunOptionsPage{Format: "log", InputFile: tmpDir},
			wantErr: `invalid 'input-file': path "` + tmpDir + `" is a directory, not a file`,
		},
		{
			name:    "Invalid xss",
			options: RunOptionsPage{Format: "log", Xss: "-Xss512k"},
			args:    []string{"index.html"},
			wantErr: `the 'xss' flag must be a size such as 512k, got "-Xss512k"`,
		},
		{
			name:    "Unsupported format",
			options: RunOptionsPage{Format: "xml"},
			args:    []string{"index.html"},
			wantErr: `unsupported format "xml"`,
		},
		{
			name:    "Negative threads",
			options: RunOptionsPage{Format: "log", Threads: -1},
			args:    []string{"index.html"},
			wantErr: "the 'threads' flag must be a positive integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePageArgs(&tt.options, tt.args)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReadLocationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.txt")
	require.NoError(t, os.WriteFile(path, []byte("# pages\nindex.html\n\n  https://example.org/  \n"), 0644))

	locations, err := readLocationsFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "https://example.org/"}, locations)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0644))
	_, err = readLocationsFile(empty)
	assert.ErrorContains(t, err, "lists no locations")
}

func TestBuildRequest(t *testing.T) {
	cfg := config.Default()
	cfg.Validator.InterpreterOptions = yaml.MapSlice{
		{Key: "-Xss512k", Value: nil},
		{Key: "-Dfile.encoding", Value: "UTF-8"},
	}
	cfg.Validator.ToolOptions = yaml.MapSlice{{Key: "--no-langdetect", Value: nil}}
	split := true
	cfg.Validator.Split = &split

	req := buildRequest(cfg, &RunOptionsPage{Xss: "1024k", NoStream: true}, []string{"index.html"})

	assert.Equal(t, []string{"index.html"}, req.Locations)
	assert.Equal(t, []string{"-Dfile.encoding", "UTF-8", "-Xss1024k"}, validator.Compile(req.InterpreterOptions))
	assert.Equal(t, []string{"--no-langdetect", "--no-stream"}, validator.Compile(req.ToolOptions))
	assert.True(t, req.Split)

	req = buildRequest(cfg, &RunOptionsPage{}, nil)
	assert.Equal(t, []string{"-Xss512k", "-Dfile.encoding", "UTF-8"}, validator.Compile(req.InterpreterOptions), "configured stack size kept without --xss")

	req = buildRequest(config.Default(), &RunOptionsPage{}, nil)
	assert.Empty(t, req.InterpreterOptions)
	assert.Empty(t, req.ToolOptions)
	assert.False(t, req.Split)
}

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("page", pflag.ContinueOnError)
	flags.Bool("split", false, "")
	assert.False(t, hasFlags(flags))

	require.NoError(t, flags.Parse([]string{"--split"}))
	assert.True(t, hasFlags(flags))
}

// shellConfig runs a shell script in place of the validator. The script
// reports one info message for the last location it receives.
func shellConfig(t *testing.T) *config.Config {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	script := filepath.Join(t.TempDir(), "vnu.sh")
	require.NoError(t, os.WriteFile(script, []byte(`#!/bin/sh
for last; do :; done
printf '{"messages":[{"url":"%s","type":"info","subType":"warning","message":"seen","lastLine":1}]}' "$last"
`), 0755))

	cfg := config.Default()
	cfg.Logger.Level = "OFF"
	cfg.Validator.Interpreter = sh
	cfg.Validator.ToolPath = script
	return cfg
}

func TestRunPage(t *testing.T) {
	cfg := shellConfig(t)

	page := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(page, []byte("<!DOCTYPE html><html></html>"), 0644))
	missing := filepath.Join(t.TempDir(), "foo.html")

	t.Run("json to stdout", func(t *testing.T) {
		var out bytes.Buffer
		options := &RunOptionsPage{Format: "json", Split: true, Threads: 2}
		require.NoError(t, runPage(t.Context(), cfg, options, []string{page, missing}, &out))

		var report map[string][]map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, map[string][]map[string]any{
			page:    {{"type": "info", "subType": "warning", "message": "seen", "lastLine": float64(1)}},
			missing: {{"type": "critical", "message": "File path does not exists."}},
		}, report)
	})

	t.Run("sarif to folder", func(t *testing.T) {
		outDir := filepath.Join(t.TempDir(), "reports")
		options := &RunOptionsPage{Format: "sarif", OutputPath: outDir}
		require.NoError(t, runPage(t.Context(), cfg, options, []string{page}, nil))

		data, err := os.ReadFile(filepath.Join(outDir, "html-checker-report.sarif"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"ruleId": "info.warning"`)
	})

	t.Run("log to file", func(t *testing.T) {
		outFile := filepath.Join(t.TempDir(), "report.log")
		options := &RunOptionsPage{Format: "log", OutputPath: outFile}
		require.NoError(t, runPage(t.Context(), cfg, options, []string{page}, nil))

		data, err := os.ReadFile(outFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[WARN]  report: seen: location="+page)
	})

	t.Run("fail on findings", func(t *testing.T) {
		var out bytes.Buffer
		options := &RunOptionsPage{Format: "json", FailOnFindings: true}
		err := runPage(t.Context(), cfg, options, []string{page}, &out)

		var cmdErr *cmderrors.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, cmderrors.ExitCodeFindings, cmdErr.ExitCode)
		assert.NotEmpty(t, out.String(), "report is written before failing")
	})

	t.Run("invalid arguments", func(t *testing.T) {
		err := runPage(t.Context(), cfg, &RunOptionsPage{Format: "json"}, nil, nil)

		var cmdErr *cmderrors.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, cmderrors.ExitCodeError, cmdErr.ExitCode)
	})
}

func TestRunPageExecutionError(t *testing.T) {
	cfg := config.Default()
	cfg.Logger.Level = "OFF"
	cfg.Validator.Interpreter = "nietniet"

	t.Run("strict", func(t *testing.T) {
		err := runPage(t.Context(), cfg, &RunOptionsPage{Format: "json"}, []string{"http://perdu.com"}, &bytes.Buffer{})

		var cmdErr *cmderrors.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, cmderrors.ExitCodeError, cmdErr.ExitCode)
		assert.ErrorIs(t, err, validator.ErrInterpreterUnreachable)
	})

	t.Run("safe", func(t *testing.T) {
		var out bytes.Buffer
		err := runPage(t.Context(), cfg, &RunOptionsPage{Format: "json", Safe: true}, []string{"http://perdu.com"}, &out)
		require.NoError(t, err)

		var report map[string][]map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report[validator.AllBucket], 1)
		assert.Equal(t, "critical", report[validator.AllBucket][0]["type"])
	})
}
