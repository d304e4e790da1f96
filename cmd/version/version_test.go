package version

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scan-io-git/html-checker/pkg/shared/config"
)

func TestCollectVersions(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name            string
		interpreter     string
		wantInterpreter func(t *testing.T) string
	}{
		{
			name:            "no interpreter",
			wantInterpreter: func(*testing.T) string { return "none" },
		},
		{
			name:            "missing interpreter",
			interpreter:     "nietniet",
			wantInterpreter: func(*testing.T) string { return "nietniet (not found)" },
		},
		{
			name:        "interpreter on PATH",
			interpreter: "sh",
			wantInterpreter: func(t *testing.T) string {
				path, err := exec.LookPath("sh")
				if err != nil {
					t.Skip("sh not available")
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.wantInterpreter(t)
			cfg := config.Default()
			cfg.Validator.Interpreter = tt.interpreter
			cfg.Validator.InstallRoot = root

			v := collectVersions(cfg)
			assert.Equal(t, want, v.Interpreter)
			assert.Equal(t, filepath.Join(root, "vnujar", "vnu.jar"), v.ToolPath)
			assert.Equal(t, CoreVersion, v.Version)
		})
	}
}

func TestPrintVersionInfo(t *testing.T) {
	var buf bytes.Buffer
	printVersionInfo(&buf, Versions{
		Version:       "1.2.0",
		GolangVersion: "go1.24.1",
		BuildTime:     "2025-01-01T00:00:00Z",
		Interpreter:   "/usr/bin/java",
		ToolPath:      "/opt/html-checker/vnujar/vnu.jar",
	})

	assert.Equal(t, `Core Version: v1.2.0
Go Version: go1.24.1
Build Time: 2025-01-01T00:00:00Z
Interpreter: /usr/bin/java
Validator: /opt/html-checker/vnujar/vnu.jar
`, buf.String())
}
