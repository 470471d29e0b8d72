package shellsetup

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		envComspec    string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "windows prefers COMSPEC",
			goos:          "windows",
			envComspec:    `C:\Windows\System32\cmd.exe`,
			expectedShell: "cmd",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				switch key {
				case "SHELL":
					return tt.envShell
				case "COMSPEC":
					return tt.envComspec
				default:
					return ""
				}
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}

func TestPrintSetupSnippets(t *testing.T) {
	tests := []struct {
		shell    string
		contains []string
	}{
		{shell: "bash", contains: []string{"qo() {", `command "/opt/bin/qopen" --print "$@"`, "${VISUAL:-${EDITOR:-vi}}"}},
		{shell: "/usr/bin/zsh", contains: []string{"qo() {"}},
		{shell: "fish", contains: []string{"function qo", `command "/opt/bin/qopen" --print $argv`, "string escape"}},
		{shell: "powershell", contains: []string{"function qo {", `& "/opt/bin/qopen" --print @args`}},
		{shell: "tcsh", contains: []string{"alias qo", "/opt/bin/qopen --print \\!*"}},
		{shell: "cmd", contains: []string{`for /f "delims=" %%f in ('"/opt/bin/qopen" --print %*')`, "%QO_EDITOR%"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := Config{
				DetectParent: func() string { return "" },
				Executable:   "/opt/bin/qopen",
			}
			if err := PrintSetup(&buf, tt.shell, cfg); err != nil {
				t.Fatalf("PrintSetup: %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Fatalf("snippet for %s missing %q:\n%s", tt.shell, want, out)
				}
			}
			if strings.Contains(out, "%!") {
				t.Fatalf("snippet for %s has a formatting error:\n%s", tt.shell, out)
			}
		})
	}
}
