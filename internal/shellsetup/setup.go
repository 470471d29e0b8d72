// Package shellsetup prints shell functions that run qopen in print mode and
// open the chosen file in the user's editor from the calling shell.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the binary path embedded in the snippet.
	Executable string
}

// FunctionName is the name of the shell function the snippet defines.
const FunctionName = "qo"

// PrintSetup writes the integration snippet for shellOverride, or for the
// detected shell when shellOverride is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	bin := cfg.Executable
	if bin == "" {
		exe, err := os.Executable()
		if err != nil {
			exe = "qopen"
		}
		bin = exe
	}
	quoted := strconv.Quote(bin)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function %[1]s
    set -l target (command %[2]s --print $argv)
    or return $status
    test -n "$target"; or return 0
    set -l editor $VISUAL
    test -n "$editor"; or set editor $EDITOR
    test -n "$editor"; or set editor vi
    eval $editor (string escape -- $target)
end
`, FunctionName, quoted)
	case "pwsh":
		_, err = fmt.Fprintf(w, `function %[1]s {
    $target = & %[2]s --print @args
    if ($LASTEXITCODE -ne 0 -or [string]::IsNullOrEmpty($target)) {
        return
    }
    $editor = $env:VISUAL
    if (-not $editor) { $editor = $env:EDITOR }
    if (-not $editor) { $editor = 'notepad' }
    & $editor $target
}
`, FunctionName, quoted)
	case "tcsh", "csh":
		_, err = fmt.Fprintf(w, "alias %s 'set _qo_target=`%s --print \\!*` && test -n \"$_qo_target\" && ${EDITOR} \"$_qo_target\"'\n", FunctionName, bin)
	case "cmd":
		_, err = fmt.Fprintf(w, `:: Save as %[1]s.cmd somewhere on PATH.
@echo off
set "QO_EDITOR=%%EDITOR%%"
if "%%QO_EDITOR%%"=="" set "QO_EDITOR=notepad"
for /f "delims=" %%%%f in ('%[2]s --print %%*') do (
    if not "%%%%f"=="" %%QO_EDITOR%% "%%%%f"
)
`, FunctionName, quoted)
	default:
		_, err = fmt.Fprintf(w, `%[1]s() {
    local target
    target=$(command %[2]s --print "$@") || return $?
    [ -n "$target" ] || return 0
    ${VISUAL:-${EDITOR:-vi}} "$target"
}
`, FunctionName, quoted)
	}
	return err
}

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell != "" {
			switch shell {
			case "pwsh", "cmd":
				return shell
			}
		}
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := path.Base(value)
	base = strings.ToLower(base)
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
