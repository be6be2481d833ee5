package export

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/afero"
)

const (
	DefaultPackage  = "patterns"
	DefaultVarName  = "Pattern"
	DefaultFileName = "pattern.go"
)

// ErrEmptyPattern is returned when there is no pattern to export
var ErrEmptyPattern = errors.New("nothing to export: pattern is empty")

// Service renders the built pattern as Go source and writes it out
type Service struct {
	fs afero.Fs
}

// NewService creates a new export service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// ExportOptions contains configuration for export operations
type ExportOptions struct {
	DestinationPath string
	Package         string // Package clause of the generated file
	VarName         string // Name of the exported regexp variable
	Overwrite       bool
}

// ExportSummary contains information about the export operation
type ExportSummary struct {
	Pattern         string
	DestinationPath string
	Bytes           int
}

func (opts ExportOptions) withDefaults() ExportOptions {
	if opts.Package == "" {
		opts.Package = DefaultPackage
	}
	if opts.VarName == "" {
		opts.VarName = DefaultVarName
	}
	return opts
}

// RenderGo generates a Go file declaring the pattern as a compiled regexp.
// The pattern must compile, since the generated code uses MustCompile.
func (s *Service) RenderGo(pattern string, opts ExportOptions) ([]byte, error) {
	opts = opts.withDefaults()

	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if !token.IsIdentifier(opts.Package) {
		return nil, fmt.Errorf("invalid package name %q", opts.Package)
	}
	if !token.IsIdentifier(opts.VarName) {
		return nil, fmt.Errorf("invalid variable name %q", opts.VarName)
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, fmt.Errorf("pattern does not compile: %w", err)
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by regexblocks. DO NOT EDIT.")
	f.Commentf("%s matches %s", opts.VarName, pattern)
	f.Var().Id(opts.VarName).Op("=").Qual("regexp", "MustCompile").Call(jen.Lit(pattern))

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render Go source: %w", err)
	}
	return buf.Bytes(), nil
}

// GetExportSummary calculates what would be exported without writing
func (s *Service) GetExportSummary(pattern string, opts ExportOptions) (*ExportSummary, error) {
	src, err := s.RenderGo(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &ExportSummary{
		Pattern:         pattern,
		DestinationPath: opts.DestinationPath,
		Bytes:           len(src),
	}, nil
}

// ExportPattern writes the generated Go file to opts.DestinationPath
func (s *Service) ExportPattern(pattern string, opts ExportOptions) (*ExportSummary, error) {
	if strings.TrimSpace(opts.DestinationPath) == "" {
		return nil, fmt.Errorf("export path cannot be empty")
	}

	src, err := s.RenderGo(pattern, opts)
	if err != nil {
		return nil, err
	}

	// Create destination directory if it doesn't exist
	destDir := filepath.Dir(opts.DestinationPath)
	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	// Check if destination exists and handle overwrite
	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, opts.DestinationPath); err != nil {
			return nil, fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return nil, fmt.Errorf("destination file exists and overwrite is disabled: %s", opts.DestinationPath)
		}
	}

	if err := afero.WriteFile(s.fs, opts.DestinationPath, src, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", opts.DestinationPath, err)
	}

	return &ExportSummary{
		Pattern:         pattern,
		DestinationPath: opts.DestinationPath,
		Bytes:           len(src),
	}, nil
}

// GetDefaultExportPath returns pattern.go in the current working directory
func GetDefaultExportPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return filepath.Join(cwd, DefaultFileName), nil
}

// ValidateExportPath performs basic validation on the export path
func (s *Service) ValidateExportPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("export path cannot be empty")
	}

	if filepath.Ext(path) != ".go" {
		return fmt.Errorf("export path must end in .go: %s", path)
	}

	// Check if path is absolute or relative
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		path = absPath
	}

	// Check if parent directory exists
	parentDir := filepath.Dir(path)
	if exists, err := afero.DirExists(s.fs, parentDir); err != nil || !exists {
		return fmt.Errorf("parent directory does not exist: %s", parentDir)
	}

	return nil
}
