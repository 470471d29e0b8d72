package app

import (
	"errors"
	"reflect"
	"testing"
)

func TestDetectEditorCommandPrefersQopenEditor(t *testing.T) {
	env := map[string]string{
		EnvEditor: "code --wait",
		"VISUAL":  "vim",
		"EDITOR":  "nano",
	}
	lookPath := func(cmd string) (string, error) {
		return "/usr/bin/" + cmd, nil
	}
	args, ok := detectEditorCommandInternal("linux", func(k string) string { return env[k] }, lookPath)
	if !ok {
		t.Fatalf("expected editor command")
	}
	expected := []string{"/usr/bin/code", "--wait"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandSkipsMissingVisual(t *testing.T) {
	env := map[string]string{
		"VISUAL": "missing-editor",
		"EDITOR": "nano -w",
	}
	lookPath := func(cmd string) (string, error) {
		if cmd == "nano" {
			return "/bin/nano", nil
		}
		return "", errors.New("not found")
	}
	args, ok := detectEditorCommandInternal("linux", func(k string) string { return env[k] }, lookPath)
	if !ok {
		t.Fatalf("expected editor command")
	}
	expected := []string{"/bin/nano", "-w"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandWindowsFallbacks(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		switch cmd {
		case "code":
			return "", errors.New("not found")
		case "notepad++.exe":
			return `C:\Program Files\Notepad++\notepad++.exe`, nil
		default:
			return "", errors.New("not found")
		}
	}
	getenv := func(string) string { return "" }
	args, ok := detectEditorCommandInternal("windows", getenv, lookPath)
	if !ok {
		t.Fatalf("expected editor fallback")
	}
	expected := []string{`C:\Program Files\Notepad++\notepad++.exe`}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandUnixFallbacks(t *testing.T) {
	lookPath := func(cmd string) (string, error) {
		if cmd == "vim" {
			return "/usr/bin/vim", nil
		}
		return "", errors.New("not found")
	}
	getenv := func(string) string { return "" }
	args, ok := detectEditorCommandInternal("linux", getenv, lookPath)
	if !ok {
		t.Fatalf("expected editor fallback")
	}
	expected := []string{"/usr/bin/vim"}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestDetectEditorCommandNoneAvailable(t *testing.T) {
	lookPath := func(string) (string, error) { return "", errors.New("not found") }
	if args, ok := detectEditorCommandInternal("linux", func(string) string { return "" }, lookPath); ok {
		t.Fatalf("expected no editor, got %v", args)
	}
}

func TestParseEditorCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"vim", []string{"vim"}},
		{`code --wait`, []string{"code", "--wait"}},
		{`"/Applications/Sublime Text.app/subl" -w`, []string{"/Applications/Sublime Text.app/subl", "-w"}},
		{`emacsclient -a '' -t`, []string{"emacsclient", "-a", "-t"}},
	}
	for _, tt := range tests {
		if got := parseEditorCommand(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("parseEditorCommand(%q)=%v want %v", tt.in, got, tt.want)
		}
	}
}
