package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cheerioskun/regexblocks/internal/parser"
	"github.com/google/go-cmp/cmp"
	"github.com/cheerioskun/regexblocks/internal/export"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// execute runs the root command against a fresh in-memory filesystem
func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	appFs = fs
	cfgFile = ""
	blockFile, samplesFile, outputPath = "", "", ""
	testSamples = nil
	emitGo, overwrite = false, false
	goPackage, goVarName = "patterns", "Pattern"
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no blocks prints the placeholder",
			args: []string{"render"},
			want: "Regex goes here\n",
		},
		{
			name: "bare and full tokens",
			args: []string{"render", "anchor:str-start", "digit", "literal=ab", "str-end"},
			want: "^\\d(ab)$\n",
		},
		{
			name: "default value fills editable blocks",
			args: []string{"render", "one-plus"},
			want: "(cat)+\n",
		},
		{
			name: "single character values are not grouped",
			args: []string{"render", "digit", "one-plus=5"},
			want: "\\d5+\n",
		},
		{
			name: "verdict per sample",
			args: []string{"render", "str-start", "literal", "--test", "catalog", "--test", "concat", "--test", ""},
			want: "^(cat)\nmatch     \"catalog\"\nno match  \"concat\"\nneutral   \"\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, afero.NewMemMapFs(), tt.args...)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderUnknownBlock(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "render", "digit", "nope")
	if !errors.Is(err, parser.ErrUnknownBlock) {
		t.Errorf("error = %v, want ErrUnknownBlock", err)
	}
}

func TestRenderInvalidPattern(t *testing.T) {
	out, stderr, err := execute(t, afero.NewMemMapFs(), "render", "zero-plus=")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "*\n" {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(stderr, "invalid pattern") {
		t.Errorf("stderr = %q, want a warning", stderr)
	}

	_, _, err = execute(t, afero.NewMemMapFs(), "render", "zero-plus=", "--test", "x")
	if err == nil || !strings.Contains(err.Error(), "invalid pattern") {
		t.Errorf("error = %v, want invalid pattern", err)
	}
}

func TestRenderFromFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	blocks := "blocks:\n  - kind: word\n  - kind: literal\n    value: go\n  - kind: boundary:word\n"
	if err := afero.WriteFile(fs, "/in/blocks.yaml", []byte(blocks), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/in/samples.txt", []byte("let's go now\r\ngopher\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, fs, "render", "-f", "/in/blocks.yaml", "--samples", "/in/samples.txt")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "\\b(go)\\b\nmatch     \"let's go now\"\nno match  \"gopher\"\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderGo(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := execute(t, fs, "render", "digit", "--go", "--package", "gen", "--var", "Digit")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"package gen", "var Digit = regexp.MustCompile(\"\\\\d\")"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = execute(t, fs, "render", "digit", "--go", "-o", "/gen/digit.go")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out, "Wrote ") {
		t.Errorf("output = %q", out)
	}
	if ok, _ := afero.Exists(fs, "/gen/digit.go"); !ok {
		t.Errorf("generated file not written")
	}

	// Existing files are kept unless --overwrite is given
	if _, _, err = execute(t, fs, "render", "digit", "--go", "-o", "/gen/digit.go"); err == nil {
		t.Errorf("expected an error for an existing file")
	}
	if _, _, err = execute(t, fs, "render", "digit", "--go", "-o", "/gen/digit.go", "--overwrite"); err != nil {
		t.Errorf("overwrite failed: %v", err)
	}
}

func TestRenderGoEmptySequence(t *testing.T) {
	fs := afero.NewMemMapFs()

	out, _, err := execute(t, fs, "render", "--go")
	if !errors.Is(err, export.ErrEmptyPattern) {
		t.Errorf("error = %v, want ErrEmptyPattern", err)
	}
	if strings.Contains(out, "MustCompile") {
		t.Errorf("Go source emitted for an empty sequence:\n%s", out)
	}

	if _, _, err := execute(t, fs, "render", "--go", "-o", "/gen/empty.go"); !errors.Is(err, export.ErrEmptyPattern) {
		t.Errorf("error = %v, want ErrEmptyPattern", err)
	}
	if ok, _ := afero.Exists(fs, "/gen/empty.go"); ok {
		t.Errorf("file written for an empty sequence")
	}
}

func TestPalette(t *testing.T) {
	out, _, err := execute(t, afero.NewMemMapFs(), "palette")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	headings := []string{"Anchors", "Boundaries", "Literals", "Character Classes", "Quantifiers"}
	last := -1
	for _, h := range headings {
		i := strings.Index(out, h)
		if i <= last {
			t.Errorf("heading %q missing or out of order", h)
		}
		last = i
	}
	for _, want := range []string{"anchor:str-start", "literal:string=cat", "repeat:zero-or-one=cat", "(cat)?"} {
		if !strings.Contains(out, want) {
			t.Errorf("palette output missing %q", want)
		}
	}
}

func TestConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/etc/rb.yaml", []byte("default_value: dog\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, fs, "--config", "/etc/rb.yaml", "render", "literal")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "(dog)\n" {
		t.Errorf("output = %q, want %q", out, "(dog)\n")
	}

	if _, _, err := execute(t, fs, "--config", "/etc/missing.yaml", "palette"); err == nil {
		t.Errorf("expected an error for a missing config file")
	}
}

func TestPersistentFlagsReachConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/etc/rb.yaml", []byte("default_value: dog\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Flags beat the config file
	out, _, err := execute(t, fs, "--config", "/etc/rb.yaml", "--default-value", "fox", "render", "zero-or-one")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "(fox)?\n" {
		t.Errorf("output = %q, want %q", out, "(fox)?\n")
	}

	if _, _, err := execute(t, fs, "--log-file", "/var/log/rb.out", "palette"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ok, _ := afero.Exists(fs, "/var/log/rb.out"); !ok {
		t.Errorf("--log-file did not reach the logger")
	}
}
