package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/raymyers/cfront/pkg/codegen"
)

// writeSource writes content to name inside a fresh temp dir and returns its path
func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
}

func TestFlagsExist(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)

	for _, name := range []string{"dtokens", "dparse", "dgen", "config", "log-level", "format", "type"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
	if cmd.Flags().ShorthandLookup("T") == nil {
		t.Error("expected -T shorthand for --type")
	}
}

func TestNoArgsPrintsHelp(t *testing.T) {
	out, _, err := execute(t)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cfront [file]") {
		t.Errorf("expected usage, got %q", out)
	}
}

func TestSummaryWithoutDumpFlags(t *testing.T) {
	file := writeSource(t, "test.c", "int x;\nint main() { return 0; }\n")
	out, errOut, err := execute(t, file)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, errOut)
	}
	if out != "" {
		t.Errorf("expected no stdout, got %q", out)
	}
	want := "cfront: parsed " + file + ": 2 top-level nodes\n"
	if errOut != want {
		t.Errorf("got %q, want %q", errOut, want)
	}
}

func TestDParseFlag(t *testing.T) {
	file := writeSource(t, "test.c", "int main() { return 42; }")
	out, _, err := execute(t, "--dparse", file)
	if err != nil {
		t.Fatalf("expected no error for -dparse, got %v", err)
	}
	if !strings.Contains(out, "int main()") || !strings.Contains(out, "return 42") {
		t.Errorf("unexpected output %q", out)
	}

	fileContent, err := os.ReadFile(filepath.Join(filepath.Dir(file), "test.parsed.c"))
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if out != string(fileContent) {
		t.Errorf("output file content doesn't match stdout\nStdout:\n%s\nFile:\n%s", out, fileContent)
	}
}

func TestDParseYAML(t *testing.T) {
	file := writeSource(t, "test.c", "x = 1 + 2;")
	out, _, err := execute(t, "--dparse", "--format", "yaml", file)
	if err != nil {
		t.Fatal(err)
	}

	var nodes []map[string]any
	if err := yaml.Unmarshal([]byte(out), &nodes); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if len(nodes) != 1 || nodes[0]["kind"] != "Assignment" {
		t.Errorf("unexpected dump %v", nodes)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(file), "test.parsed.yaml")); err != nil {
		t.Errorf("expected test.parsed.yaml: %v", err)
	}
}

func TestDTokens(t *testing.T) {
	file := writeSource(t, "test.c", "// note\nreturn 1;")
	out, _, err := execute(t, "--dtokens", file)
	if err != nil {
		t.Fatal(err)
	}

	var dump struct {
		Tokens []struct {
			Kind  string `yaml:"kind"`
			Value string `yaml:"value"`
			Line  int    `yaml:"line"`
		} `yaml:"tokens"`
	}
	if err := yaml.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	var kinds []string
	for _, tok := range dump.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []string{"return", "NUMBER", ";", "EOF"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	if dump.Tokens[0].Line != 2 {
		t.Errorf("return should be on line 2, got %d", dump.Tokens[0].Line)
	}
}

func TestDGen(t *testing.T) {
	file := writeSource(t, "test.c", "int add(int a, int b) { return a + b; }")
	out, _, err := execute(t, normalizeFlags([]string{"-dgen", file})...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pub fn add(a: i32, b: i32) i32 {") {
		t.Errorf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(file), "test.zig")); err != nil {
		t.Errorf("expected test.zig: %v", err)
	}
}

func TestDGenUnsupported(t *testing.T) {
	file := writeSource(t, "test.c", "int a;\nx = i++;\n")
	_, errOut, err := execute(t, "--dgen", file)
	if !errors.Is(err, codegen.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
	if !strings.Contains(errOut, "at "+file+":2") {
		t.Errorf("expected the failing location, got %q", errOut)
	}
}

func TestTypeFlag(t *testing.T) {
	file := writeSource(t, "test.c", "u8 x;")

	_, errOut, err := execute(t, file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, ": 2 top-level nodes") {
		t.Errorf("u8 should be an identifier by default: %q", errOut)
	}

	_, errOut, err = execute(t, "-T", "u8", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, ": 1 top-level nodes") {
		t.Errorf("u8 should be a type name with -T: %q", errOut)
	}
}

func TestConfigFile(t *testing.T) {
	file := writeSource(t, "test.c", "size_t n;")
	cfgPath := filepath.Join(filepath.Dir(file), "custom.toml")
	content := "[parser]\ntype_names = [\"size_t\"]\n\n[output]\nformat = \"yaml\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--config", cfgPath, "--dparse", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "kind: VariableDeclaration") {
		t.Errorf("expected a YAML variable declaration, got %q", out)
	}

	out, _, err = execute(t, "--config", cfgPath, "--format", "c", "--dparse", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "size_t n;") {
		t.Errorf("--format should override the file, got %q", out)
	}
}

func TestInvalidSettings(t *testing.T) {
	file := writeSource(t, "test.c", "x;")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "json", file}, "invalid output format"},
		{"log level", []string{"--log-level", "loud", file}, "invalid log level"},
		{"missing config", []string{"--config", "missing.toml", file}, "config file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(errOut, tt.want) {
				t.Errorf("expected %q in %q", tt.want, errOut)
			}
		})
	}
}

func TestParseErrorRendersTrail(t *testing.T) {
	file := writeSource(t, "test.c", "int main() {\n  return 1 +\n")
	_, errOut, err := execute(t, file)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.HasPrefix(errOut, "error: ") {
		t.Errorf("expected a rendered error, got %q", errOut)
	}
	if !strings.Contains(errOut, "  in top-level statement at "+file+":1") {
		t.Errorf("expected the outermost breadcrumb, got %q", errOut)
	}
}

func TestDebugLogging(t *testing.T) {
	file := writeSource(t, "test.c", "typedef int word;\nword w;\n")
	_, errOut, err := execute(t, "--log-level", "debug", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut, "component=parser") || !strings.Contains(errOut, "name=word") {
		t.Errorf("expected parser debug logs, got %q", errOut)
	}
}

func TestFileNotFound(t *testing.T) {
	_, _, err := execute(t, "--dparse", "nonexistent.c")
	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		ext      string
		expected string
	}{
		{"test.c", ".parsed.c", "test.parsed.c"},
		{"path/to/file.c", ".zig", "path/to/file.zig"},
		{"no_extension", ".parsed.c", "no_extension.parsed.c"},
		{"multiple.dots.c", ".tokens.yaml", "multiple.dots.tokens.yaml"},
	}
	for _, tc := range tests {
		if got := outputFilename(tc.input, tc.ext); got != tc.expected {
			t.Errorf("outputFilename(%q, %q) = %q, want %q", tc.input, tc.ext, got, tc.expected)
		}
	}
}

func TestNormalizeFlags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"single-dash dparse", []string{"-dparse", "test.c"}, []string{"--dparse", "test.c"}},
		{"double-dash unchanged", []string{"--dgen", "test.c"}, []string{"--dgen", "test.c"}},
		{"mixed flags", []string{"test.c", "-dtokens", "-dgen"}, []string{"test.c", "--dtokens", "--dgen"}},
		{"other flags unchanged", []string{"-T", "u8", "test.c"}, []string{"-T", "u8", "test.c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeFlags(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("normalizeFlags(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
