package cmd

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/regexblocks/internal/clipboard"
	"github.com/cheerioskun/regexblocks/internal/export"
	"github.com/cheerioskun/regexblocks/internal/utils"
	"github.com/cheerioskun/regexblocks/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI interface",
	Long: `Start the interactive Terminal User Interface for building patterns.

The TUI provides:
- A palette of blocks grouped by category
- A horizontally scrolling sequence you drag blocks into
- The rendered pattern with a copy button
- A live tester for a sample string
- Export of the pattern as a Go file

Examples:
  regexblocks tui
  regexblocks tui --mouse=false`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	var terminal io.Writer
	if viper.GetBool("osc52") {
		terminal = cmd.OutOrStdout()
	}

	model := ui.NewAppModel(ui.Options{
		DefaultValue: viper.GetString("default_value"),
		CopyFlash:    viper.GetDuration("copy_flash"),
		Clipboard:    clipboard.NewSystem(terminal),
		Exporter:     export.NewService(appFs),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if viper.GetBool("mouse") {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	utils.Debug("starting TUI (mouse=%v, osc52=%v)", viper.GetBool("mouse"), terminal != nil)

	program := tea.NewProgram(model, opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
