package cmd

import (
	"fmt"
	"strconv"

	"github.com/cheerioskun/regexblocks/internal/export"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/internal/parser"
	"github.com/cheerioskun/regexblocks/internal/pattern"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	blockFile   string
	testSamples []string
	samplesFile string
	emitGo      bool
	goPackage   string
	goVarName   string
	outputPath  string
	overwrite   bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render [blocks...]",
	Short: "Build a pattern from blocks without the TUI",
	Long: `Build a pattern from a list of blocks and print it.

Blocks are given as kind or kind=value tokens, where kind is either the full
category:subtype name or the bare subtype (see 'regexblocks palette'), or
loaded from a YAML file:

  blocks:
    - kind: str-start
    - kind: literal
      value: cat

Examples:
  regexblocks render str-start literal=cat one-plus=s
  regexblocks render digit --test a1 --test abc
  regexblocks render -f blocks.yaml --samples lines.txt
  regexblocks render word literal=go word --go --var GoWord -o gen/word.go`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	// Render-specific flags
	renderCmd.Flags().StringVarP(&blockFile, "file", "f", "", "YAML file with the blocks (prepended to the arguments)")
	renderCmd.Flags().StringArrayVarP(&testSamples, "test", "t", nil, "sample to test the pattern against (repeatable)")
	renderCmd.Flags().StringVar(&samplesFile, "samples", "", "file with one sample per line")
	renderCmd.Flags().BoolVar(&emitGo, "go", false, "emit a Go file declaring the compiled pattern")
	renderCmd.Flags().StringVar(&goPackage, "package", export.DefaultPackage, "package name of the Go file")
	renderCmd.Flags().StringVar(&goVarName, "var", export.DefaultVarName, "variable name in the Go file")
	renderCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write the Go file here instead of stdout")
	renderCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing output file")
}

func runRender(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	p := parser.NewBlockParser(appFs, viper.GetString("default_value"))

	var blocks []models.Block
	if blockFile != "" {
		fromFile, err := p.LoadBlockFile(blockFile)
		if err != nil {
			return err
		}
		blocks = append(blocks, fromFile...)
	}

	fromArgs, err := p.ParseTokens(args)
	if err != nil {
		return err
	}
	blocks = append(blocks, fromArgs...)

	result := pattern.Build(blocks)

	if emitGo {
		if err := writeGo(cmd, result.Pattern); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, result.Display())
	}

	samples := append([]string(nil), testSamples...)
	if samplesFile != "" {
		lines, err := parser.NewSampleReader(appFs).ReadFile(samplesFile)
		if err != nil {
			return err
		}
		samples = append(samples, lines...)
	}

	if len(samples) == 0 {
		if ev := pattern.Test(result.Pattern, ""); ev.Verdict == pattern.VerdictInvalid {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", ev.Verdict, ev.Error)
		}
		return nil
	}

	for _, sample := range samples {
		ev := pattern.Test(result.Pattern, sample)
		if ev.Verdict == pattern.VerdictInvalid {
			return fmt.Errorf("%s: %s", ev.Verdict, ev.Error)
		}
		fmt.Fprintf(out, "%-9s %s\n", ev.Verdict, strconv.Quote(sample))
	}

	return nil
}

// writeGo prints the generated Go file, or writes it when --out is set
func writeGo(cmd *cobra.Command, source string) error {
	service := export.NewService(appFs)
	opts := export.ExportOptions{
		DestinationPath: outputPath,
		Package:         goPackage,
		VarName:         goVarName,
		Overwrite:       overwrite,
	}

	if outputPath == "" {
		src, err := service.RenderGo(source, opts)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(src)
		return err
	}

	summary, err := service.ExportPattern(source, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", summary.Bytes, summary.DestinationPath)
	return nil
}
